package objects

// CueSpecs holds the physical constants of a cue stick.
type CueSpecs struct {
	M          float64 `json:"m" yaml:"m"`
	Length     float64 `json:"length" yaml:"length"`
	TipRadius  float64 `json:"tip_radius" yaml:"tip_radius"`
	ButtRadius float64 `json:"butt_radius" yaml:"butt_radius"`
}

func DefaultCueSpecs() CueSpecs {
	return CueSpecs{
		M:          0.567,
		Length:     1.4732,
		TipRadius:  0.007,
		ButtRadius: 0.02,
	}
}

// Cue is a cue stick plus its strike parameters. V0 is the impact speed of
// the cue tip, Phi the azimuthal aim direction in degrees, Theta the
// elevation in degrees, and A/B the side and vertical tip offsets as
// fractions of the ball radius.
type Cue struct {
	ID     string   `json:"id"`
	V0     float64  `json:"V0" yaml:"V0"`
	Phi    float64  `json:"phi" yaml:"phi"`
	Theta  float64  `json:"theta" yaml:"theta"`
	A      float64  `json:"a" yaml:"a"`
	B      float64  `json:"b" yaml:"b"`
	BallID string   `json:"ball_id" yaml:"ball_id"`
	Specs  CueSpecs `json:"specs" yaml:"specs"`
}

// NewCue creates a cue stick with default specs aimed at nothing.
func NewCue() *Cue {
	return &Cue{
		ID:    "cue_stick",
		V0:    2.0,
		B:     0.25,
		Specs: DefaultCueSpecs(),
	}
}

// SetState overwrites the strike parameters that are non-nil.
func (c *Cue) SetState(v0, phi, theta, a, b *float64) {
	if v0 != nil {
		c.V0 = *v0
	}
	if phi != nil {
		c.Phi = *phi
	}
	if theta != nil {
		c.Theta = *theta
	}
	if a != nil {
		c.A = *a
	}
	if b != nil {
		c.B = *b
	}
}

// Reset restores the strike parameters to their defaults, keeping specs and
// target ball.
func (c *Cue) Reset() {
	c.V0 = 2.0
	c.Phi = 0
	c.Theta = 0
	c.A = 0
	c.B = 0.25
}

// Copy returns a copy of the cue.
func (c *Cue) Copy() *Cue {
	d := *c
	return &d
}
