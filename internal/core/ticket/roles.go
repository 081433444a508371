package ticket

// RoleRegistry maps a role name to its constraint bundle, the same
// name-to-implementation shape used to dispatch sport-specific behavior
// elsewhere in the codebase, here keyed by role letter instead of
// sport.
type RoleRegistry struct {
	roles map[string]Role
}

func NewRoleRegistry() *RoleRegistry {
	return &RoleRegistry{roles: make(map[string]Role)}
}

func (r *RoleRegistry) Register(role Role) {
	r.roles[role.Name] = role
}

func (r *RoleRegistry) Get(name string) (Role, bool) {
	role, ok := r.roles[name]
	return role, ok
}

// DefaultRoleRegistry returns the seven roles named in spec.md §4.6.
// Only F and G hedge late shocks.
func DefaultRoleRegistry() *RoleRegistry {
	r := NewRoleRegistry()
	r.Register(Role{Name: "A", MinDraws: 0, MaxDraws: 1, MaxFavorites: 13, MinUnderdogs: 0, EntropyBandLow: 0.35, EntropyBandHigh: 0.55, HedgeShocks: false})
	r.Register(Role{Name: "B", MinDraws: 1, MaxDraws: 2, MaxFavorites: 11, MinUnderdogs: 1, EntropyBandLow: 0.40, EntropyBandHigh: 0.60, HedgeShocks: false})
	r.Register(Role{Name: "C", MinDraws: 2, MaxDraws: 3, MaxFavorites: 10, MinUnderdogs: 1, EntropyBandLow: 0.45, EntropyBandHigh: 0.65, HedgeShocks: false})
	r.Register(Role{Name: "D", MinDraws: 2, MaxDraws: 4, MaxFavorites: 9, MinUnderdogs: 2, EntropyBandLow: 0.50, EntropyBandHigh: 0.70, HedgeShocks: false})
	r.Register(Role{Name: "E", MinDraws: 3, MaxDraws: 4, MaxFavorites: 8, MinUnderdogs: 2, EntropyBandLow: 0.55, EntropyBandHigh: 0.75, HedgeShocks: false})
	r.Register(Role{Name: "F", MinDraws: 2, MaxDraws: 4, MaxFavorites: 9, MinUnderdogs: 2, EntropyBandLow: 0.50, EntropyBandHigh: 0.70, HedgeShocks: true})
	r.Register(Role{Name: "G", MinDraws: 3, MaxDraws: 5, MaxFavorites: 7, MinUnderdogs: 3, EntropyBandLow: 0.55, EntropyBandHigh: 0.80, HedgeShocks: true})
	return r
}
