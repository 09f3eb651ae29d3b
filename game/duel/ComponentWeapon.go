package duel

import (
	"github.com/LazyCat420/battle-bots/bot"
)

// attackAnimationFrames is how many frames an attack animation plays before
// isAttacking auto-clears.
const attackAnimationFrames = 10

func (game DuelGame) CastWeapon(data interface{}) *Weapon {
	return data.(*Weapon)
}

type Weapon struct {
	weapontype  string
	animation   string  // cosmetic, from the archetype table
	baseDamage  float64 // Const
	cooldown    float64 // Const; expressed in s
	attackRange float64 // Const

	cooldownRemaining float64
	attacking         bool
	animationFrame    int
}

func NewWeapon(config bot.WeaponConfig, animation string) *Weapon {
	return &Weapon{
		weapontype:  config.Type,
		animation:   animation,
		baseDamage:  config.Damage,
		cooldown:    config.CooldownMs / 1000.0, // authored in ms, simulated in s
		attackRange: config.Range,

		// Starts on cooldown: a bot cannot swing the moment the gates open.
		cooldownRemaining: config.CooldownMs / 1000.0,
	}
}

func (weapon Weapon) GetType() string {
	return weapon.weapontype
}

func (weapon Weapon) GetAnimation() string {
	return weapon.animation
}

func (weapon Weapon) GetBaseDamage() float64 {
	return weapon.baseDamage
}

func (weapon Weapon) GetRange() float64 {
	return weapon.attackRange
}

func (weapon Weapon) GetCooldownRemaining() float64 {
	return weapon.cooldownRemaining
}

func (weapon Weapon) IsReady() bool {
	return weapon.cooldownRemaining <= 0
}

func (weapon Weapon) IsAttacking() bool {
	return weapon.attacking
}

func (weapon Weapon) GetAnimationFrame() int {
	return weapon.animationFrame
}

func (weapon *Weapon) TriggerCooldown() *Weapon {
	weapon.cooldownRemaining = weapon.cooldown
	return weapon
}

func (weapon *Weapon) DecrementCooldown(dt float64) *Weapon {
	weapon.cooldownRemaining -= dt
	if weapon.cooldownRemaining < 0 {
		weapon.cooldownRemaining = 0
	}
	return weapon
}

func (weapon *Weapon) StartAttackAnimation() *Weapon {
	weapon.attacking = true
	weapon.animationFrame = 0
	return weapon
}

func (weapon *Weapon) AdvanceAttackAnimation() *Weapon {
	if !weapon.attacking {
		return weapon
	}

	weapon.animationFrame++
	if weapon.animationFrame >= attackAnimationFrames {
		weapon.attacking = false
		weapon.animationFrame = 0
	}
	return weapon
}
