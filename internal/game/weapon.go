package game

// WeaponType identifies a player weapon. Enemies counter weapons by type.
type WeaponType string

const (
	WeaponExplosive  WeaponType = "explosive"
	WeaponLaser      WeaponType = "laser"
	WeaponHint       WeaponType = "hint"
	WeaponGrace      WeaponType = "grace"
	WeaponTimeFreeze WeaponType = "time_freeze"
	WeaponEcho       WeaponType = "echo"
	WeaponFire       WeaponType = "fire"
)

// AllWeaponTypes lists every weapon type in display order.
var AllWeaponTypes = []WeaponType{
	WeaponExplosive,
	WeaponLaser,
	WeaponHint,
	WeaponGrace,
	WeaponTimeFreeze,
	WeaponEcho,
	WeaponFire,
}

// IsValid reports whether w is a known weapon type.
func (w WeaponType) IsValid() bool {
	for _, t := range AllWeaponTypes {
		if t == w {
			return true
		}
	}
	return false
}
