package game

import (
	"math"
	"math/rand"
	"time"

	"github.com/jacl-coder/PixelStorm-Survival/internal/data"
	"github.com/jacl-coder/PixelStorm-Survival/internal/models"
)

// WaveComposition 一波的敌人数量
type WaveComposition struct {
	Grunts  int `json:"grunts"`
	Elites  int `json:"elites"`
	Mirrors int `json:"mirrors"`
}

// Total 敌人总数
func (c WaveComposition) Total() int {
	return c.Grunts + c.Elites + c.Mirrors
}

// WaveDirector 波次管理
// 场上敌人清空后休息一段时间再生成下一波，只通过 SpawnEnemy / LiveEnemies 与世界交互
type WaveDirector struct {
	tuning  data.WaveTuning
	rng     *rand.Rand
	rest    models.Countdown
	wave    int
	waiting bool
}

// NewWaveDirector 创建波次管理，第一波立即生成
func NewWaveDirector(t data.WaveTuning, seed int64) *WaveDirector {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &WaveDirector{
		tuning:  t,
		rng:     rand.New(rand.NewSource(seed)),
		rest:    models.ReadyCountdown(t.Rest),
		waiting: true,
	}
}

// Wave 当前波次，尚未开始时为0
func (d *WaveDirector) Wave() int {
	return d.wave
}

// Composition 第wave波的敌人数量
func (d *WaveDirector) Composition(wave int) WaveComposition {
	t := d.tuning
	c := WaveComposition{Grunts: t.Grunts + t.GruntsPerWave*(wave-1)}
	if t.EliteFrom > 0 && wave >= t.EliteFrom {
		c.Elites = 1 + int(math.Floor(float64(wave-t.EliteFrom)*t.ElitesPerWave))
	}
	if t.MirrorFrom > 0 && wave >= t.MirrorFrom {
		every := t.MirrorEvery
		if every <= 0 {
			every = 1
		}
		c.Mirrors = 1 + (wave-t.MirrorFrom)/every
	}
	if c.Grunts < 0 {
		c.Grunts = 0
	}
	return c
}

// Update 每个tick调用，返回本次生成的敌人数
func (d *WaveDirector) Update(w *World, dt float64) int {
	p := w.Player()
	if p == nil || w.State() != StatePlaying {
		return 0
	}
	if w.LiveEnemies() > 0 {
		d.waiting = false
		return 0
	}
	if !d.waiting {
		d.waiting = true
		d.rest.Reset()
	}
	d.rest.Tick(dt)
	if !d.rest.IsReady() {
		return 0
	}

	d.waiting = false
	d.wave++
	return d.spawn(w, p.Position, d.Composition(d.wave))
}

// spawn 在玩家周围的环形区域生成敌人
func (d *WaveDirector) spawn(w *World, center models.Vector2D, c WaveComposition) int {
	kinds := make([]models.EnemyKind, 0, c.Total())
	for i := 0; i < c.Grunts; i++ {
		kinds = append(kinds, models.EnemyGrunt)
	}
	for i := 0; i < c.Elites; i++ {
		kinds = append(kinds, models.EnemyElite)
	}
	for i := 0; i < c.Mirrors; i++ {
		kinds = append(kinds, models.EnemyMirrorCaster)
	}

	for _, kind := range kinds {
		w.SpawnEnemy(kind, center.Add(d.spawnOffset()))
	}
	return len(kinds)
}

func (d *WaveDirector) spawnOffset() models.Vector2D {
	minR, maxR := d.tuning.SpawnMin, d.tuning.SpawnMax
	angle := d.rng.Float64() * 2 * math.Pi
	r := math.Sqrt(minR*minR + d.rng.Float64()*(maxR*maxR-minR*minR))
	return models.FromAngle(angle).Scale(r)
}
