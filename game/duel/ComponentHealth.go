package duel

func (game DuelGame) CastHealth(data interface{}) *Health {
	return data.(*Health)
}

type Health struct {
	maxLife float64 // Const
	life    float64 // Current life level
}

func NewHealth(maxlife float64) *Health {
	return &Health{
		maxLife: maxlife,
		life:    maxlife,
	}
}

func (health Health) GetMaxLife() float64 {
	return health.maxLife
}

func (health Health) GetLife() float64 {
	return health.life
}

func (health *Health) SetLife(life float64) {
	if life < 0 {
		life = 0
	}

	if life > health.maxLife {
		life = health.maxLife
	}

	health.life = life
}

func (health *Health) AddLife(life float64) {
	health.SetLife(life + health.GetLife())
}
