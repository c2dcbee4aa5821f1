package models

// Countdown 计时器，(已流逝, 总时长)
// 用于生命周期、无敌时间和AI计时
type Countdown struct {
	Elapsed  float64 `json:"elapsed"`
	Duration float64 `json:"duration"`
}

// NewCountdown 创建从零开始计时的计时器
func NewCountdown(duration float64) Countdown {
	return Countdown{Duration: duration}
}

// ReadyCountdown 创建已就绪的计时器
func ReadyCountdown(duration float64) Countdown {
	return Countdown{Elapsed: duration, Duration: duration}
}

// IsReady 是否已到期，时长为0时始终就绪
func (c *Countdown) IsReady() bool {
	return c.Elapsed >= c.Duration
}

// Tick 推进计时
func (c *Countdown) Tick(dt float64) {
	if c.Elapsed < c.Duration {
		c.Elapsed += dt
	}
}

// Reset 重新开始计时
func (c *Countdown) Reset() {
	c.Elapsed = 0
}

// Remaining 剩余时间
func (c *Countdown) Remaining() float64 {
	if c.Elapsed >= c.Duration {
		return 0
	}
	return c.Duration - c.Elapsed
}

// Fraction 已完成比例 [0,1]
func (c *Countdown) Fraction() float64 {
	if c.Duration <= 0 {
		return 1
	}
	f := c.Elapsed / c.Duration
	if f > 1 {
		return 1
	}
	return f
}
