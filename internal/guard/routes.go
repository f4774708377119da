package guard

// Table is the application's route registry. Every view except the entry
// screens requires an authenticated session.
func Table() []Route {
	return []Route{
		{Path: "/", Name: "home", RequiresAuth: true},
		{Path: "/about", Name: "about", RequiresAuth: true},
		{Path: "/spots-detail", Name: "spots-detail", RequiresAuth: true},
		{Path: "/register", Name: "register"},
		{Path: "/login", Name: "login"},
		{Path: "/hotels", Name: "hotels", RequiresAuth: true},
		{Path: "/homestays", Name: "homestays", RequiresAuth: true},
		{Path: "/bus-stops", Name: "bus-stops", RequiresAuth: true},
		{Path: "/metro-stations", Name: "metro-stations", RequiresAuth: true},
		{Path: "/parking-lots", Name: "parking-lots", RequiresAuth: true},
		{Path: "/sichuan-food", Name: "sichuan-food", RequiresAuth: true},
		{Path: "/hotpot", Name: "hotpot", RequiresAuth: true},
		{Path: "/snacks", Name: "snacks", RequiresAuth: true},
		{Path: "/western-food", Name: "western-food", RequiresAuth: true},
	}
}

// Lookup resolves a path against the registry. Unknown paths come back as
// public routes, matching the routing collaborator's absent-flag contract.
func Lookup(path string) Route {
	for _, r := range Table() {
		if r.Path == path {
			return r
		}
	}
	return Route{Path: path}
}
