package game

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jacl-coder/PixelStorm-Survival/internal/data"
	"github.com/jacl-coder/PixelStorm-Survival/internal/models"
	"github.com/jacl-coder/PixelStorm-Survival/internal/protocol"
)

// recordTimeout 保存对局结果的超时时间
const recordTimeout = 5 * time.Second

// RunRecorder 对局结束时保存结果
type RunRecorder interface {
	RecordRun(ctx context.Context, rec *models.RunRecord) error
}

// SessionOptions 会话参数
type SessionOptions struct {
	PlayerID string
	TickRate int
	Seed     int64
	CellSize float64
	Logger   *zap.Logger
	Recorder RunRecorder
	Hooks    Hooks
}

// Session 单人对局: 持有一个世界，在自己的协程里按固定频率推进
// 输入由连接协程写入，经锁保护的锁存器在每个tick开始时取出
type Session struct {
	ID       string
	PlayerID string

	world    *World
	director *WaveDirector
	log      *zap.Logger
	recorder RunRecorder
	interval time.Duration
	dt       float64

	// 输入锁存
	inputMu      sync.Mutex
	latest       protocol.PlayerInput
	fireEdge     [models.HandCount]bool
	skillEdge    [models.HandCount]bool
	pendingStats *models.CombatStats
	lastActive   time.Time

	frames    chan *Snapshot
	shutdown  chan struct{}
	done      chan struct{}
	startOnce sync.Once
	stopOnce  sync.Once
	startedAt time.Time
}

// NewSession 创建会话，玩家出生在原点
func NewSession(tuning *data.Tuning, opts SessionOptions) *Session {
	if tuning == nil {
		tuning = data.Default()
	}
	rate := opts.TickRate
	if rate <= 0 {
		rate = 60
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	id := uuid.New().String()
	log = log.With(zap.String("session_id", id), zap.String("player_id", opts.PlayerID))

	world := NewWorld(tuning, Options{
		Seed:     opts.Seed,
		CellSize: opts.CellSize,
		Logger:   log,
		Hooks:    opts.Hooks,
	})
	world.SpawnPlayer(models.Vector2D{})

	directorSeed := opts.Seed
	if directorSeed != 0 {
		directorSeed++
	}

	now := time.Now()
	return &Session{
		ID:         id,
		PlayerID:   opts.PlayerID,
		world:      world,
		director:   NewWaveDirector(tuning.Waves, directorSeed),
		log:        log,
		recorder:   opts.Recorder,
		interval:   time.Second / time.Duration(rate),
		dt:         1 / float64(rate),
		lastActive: now,
		frames:     make(chan *Snapshot, 1),
		shutdown:   make(chan struct{}),
		done:       make(chan struct{}),
		startedAt:  now,
	}
}

// World 会话内的世界，只能在会话协程或会话启动前访问
func (s *Session) World() *World {
	return s.world
}

// Frames 每个tick的快照，消费不及时只保留最新一帧；会话结束后关闭
func (s *Session) Frames() <-chan *Snapshot {
	return s.frames
}

// Done 会话协程退出后关闭
func (s *Session) Done() <-chan struct{} {
	return s.done
}

// SubmitInput 写入最新输入，记录两次tick之间出现的按下沿
func (s *Session) SubmitInput(in protocol.PlayerInput) {
	s.inputMu.Lock()
	defer s.inputMu.Unlock()

	for h := 0; h < models.HandCount; h++ {
		if in.Fire[h] && !s.latest.Fire[h] {
			s.fireEdge[h] = true
		}
		if in.Skill[h] && !s.latest.Skill[h] {
			s.skillEdge[h] = true
		}
	}
	s.latest = in
	s.lastActive = time.Now()
}

// SetCombatStats 成长系统更新属性，下一个tick生效
func (s *Session) SetCombatStats(stats models.CombatStats) {
	s.inputMu.Lock()
	defer s.inputMu.Unlock()
	s.pendingStats = &stats
	s.lastActive = time.Now()
}

// LastActive 最后一次收到客户端消息的时间
func (s *Session) LastActive() time.Time {
	s.inputMu.Lock()
	defer s.inputMu.Unlock()
	return s.lastActive
}

// drainInput 取出本tick的输入并清空按下沿
func (s *Session) drainInput() (Input, *models.CombatStats) {
	s.inputMu.Lock()
	defer s.inputMu.Unlock()

	in := Input{
		Cursor: protocol.ToModelVector(s.latest.Cursor),
		Move:   protocol.ToModelVector(s.latest.Move),
	}
	for h := 0; h < models.HandCount; h++ {
		in.Fire[h] = ButtonState{
			Pressed:     s.latest.Fire[h] || s.fireEdge[h],
			JustPressed: s.fireEdge[h],
		}
		in.Skill[h] = ButtonState{
			Pressed:     s.latest.Skill[h] || s.skillEdge[h],
			JustPressed: s.skillEdge[h],
		}
	}
	s.fireEdge = [models.HandCount]bool{}
	s.skillEdge = [models.HandCount]bool{}

	stats := s.pendingStats
	s.pendingStats = nil
	return in, stats
}

// Step 执行一次tick并返回快照；Start之后只由会话协程调用
func (s *Session) Step(dt float64) *Snapshot {
	in, stats := s.drainInput()
	if stats != nil {
		s.world.SetCombatStats(*stats)
	}
	if n := s.director.Update(s.world, dt); n > 0 {
		s.log.Info("新一波敌人",
			zap.Int("wave", s.director.Wave()),
			zap.Int("count", n))
	}
	s.world.Tick(dt, in)

	snap := s.world.Snapshot()
	snap.Wave = s.director.Wave()
	return snap
}

// Start 启动会话协程
func (s *Session) Start() error {
	err := fmt.Errorf("会话 %s 已经启动", s.ID)
	s.startOnce.Do(func() {
		err = nil
		s.startedAt = time.Now()
		go s.run()
	})
	return err
}

// Stop 停止会话并等待协程退出
func (s *Session) Stop() {
	s.stopOnce.Do(func() {
		close(s.shutdown)
	})
	s.startOnce.Do(func() {
		close(s.frames)
		close(s.done)
	})
	<-s.done
}

// run 会话主循环，使用固定步长保证同一种子下结果一致
func (s *Session) run() {
	defer close(s.done)
	defer close(s.frames)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.log.Info("会话开始", zap.Duration("interval", s.interval))
	for {
		select {
		case <-ticker.C:
			snap := s.Step(s.dt)
			s.publish(snap)
			if snap.State == StateOver {
				s.finish(snap)
				return
			}
		case <-s.shutdown:
			s.log.Info("会话已停止", zap.Int64("frame", s.world.Frame()))
			return
		}
	}
}

// publish 发布快照，通道满时丢弃旧帧
func (s *Session) publish(snap *Snapshot) {
	for {
		select {
		case s.frames <- snap:
			return
		default:
		}
		select {
		case <-s.frames:
		default:
		}
	}
}

// RunRecord 根据结束时的快照生成对局记录
func (s *Session) RunRecord(snap *Snapshot) *models.RunRecord {
	rec := &models.RunRecord{
		ID:        s.ID,
		PlayerID:  s.PlayerID,
		StartedAt: s.startedAt,
		EndedAt:   time.Now(),
		Survived:  snap.Time,
		Frames:    snap.FrameID,
		Wave:      snap.Wave,
	}
	if snap.Player != nil {
		rec.Currency = snap.Player.Currency
		rec.Kills = snap.Player.Kills
	}
	return rec
}

// finish 对局结束，保存结果
func (s *Session) finish(snap *Snapshot) {
	rec := s.RunRecord(snap)
	s.log.Info("对局结束",
		zap.Float64("survived", rec.Survived),
		zap.Int("wave", rec.Wave),
		zap.Int("kills", rec.Kills),
		zap.Int("currency", rec.Currency))

	if s.recorder == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), recordTimeout)
	defer cancel()
	if err := s.recorder.RecordRun(ctx, rec); err != nil {
		s.log.Error("保存对局记录失败", zap.Error(err))
	}
}
