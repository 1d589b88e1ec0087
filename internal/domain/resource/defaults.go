package resource

import "github.com/jhoicas/wellness-admin/internal/domain/entity"

// Claves de recurso.
const (
	Programs        = "programs"
	Enrollments     = "enrollments"
	Workouts        = "workouts"
	FoodItems       = "food-items"
	FoodCategories  = "food-categories"
	Units           = "units"
	BlogPosts       = "blog-posts"
	BlogCategories  = "blog-categories"
	Roles           = "roles"
	Teams           = "teams"
	Users           = "users"
	Testimonials    = "testimonials"
	PaymentMethods  = "payment-methods"
	Invoices        = "invoices"
	OnboardingForms = "onboarding-forms"
	StaffAccounts   = "staff-accounts"
)

func col(key, label string, kind SkeletonKind, sortable bool) Column {
	return Column{Key: key, Label: label, Skeleton: kind, Sortable: sortable}
}

func admin(key string) (path, endpoint string) {
	return "/" + key, "/admin/" + key
}

func define(key, label, singular, group, sort, dir, empty string, newEntity func() any, cols ...Column) Resource {
	path, endpoint := admin(key)
	return Resource{
		Key:              key,
		Label:            label,
		Singular:         singular,
		Group:            group,
		Path:             path,
		Endpoint:         endpoint,
		DefaultSort:      sort,
		DefaultDirection: dir,
		Columns:          cols,
		EmptyMessage:     empty,
		Creatable:        true,
		NewEntity:        newEntity,
	}
}

// DefaultResources catálogo completo del panel.
func DefaultResources() []Resource {
	programs := define(Programs, "Programs", "Program", "Programs", "created_at", DirectionDesc,
		"Todavía no hay programas.",
		func() any { return &entity.Program{} },
		col("title", "Title", SkeletonText, true),
		col("level", "Level", SkeletonBadge, true),
		col("status", "Status", SkeletonBadge, true),
		col("duration_weeks", "Weeks", SkeletonNumber, true),
		col("price", "Price", SkeletonNumber, true),
	)
	programs.PublicEndpoint = "/public/programs"

	enrollments := define(Enrollments, "Enrollments", "Enrollment", "Programs", "created_at", DirectionDesc,
		"No hay inscripciones registradas.",
		func() any { return &entity.Enrollment{} },
		col("user_name", "Client", SkeletonAvatar, false),
		col("program_title", "Program", SkeletonText, false),
		col("status", "Status", SkeletonBadge, true),
		col("start_date", "Start", SkeletonDate, true),
		col("progress", "Progress", SkeletonNumber, true),
	)

	testimonials := define(Testimonials, "Testimonials", "Testimonial", "Content", "created_at", DirectionDesc,
		"No hay testimonios.",
		func() any { return &entity.Testimonial{} },
		col("author_name", "Author", SkeletonAvatar, true),
		col("rating", "Rating", SkeletonNumber, true),
		col("published", "Published", SkeletonBadge, true),
	)
	testimonials.PublicEndpoint = "/public/testimonials"

	blogPosts := define(BlogPosts, "Blog Posts", "Blog Post", "Content", "published_at", DirectionDesc,
		"No hay artículos publicados.",
		func() any { return &entity.BlogPost{} },
		col("title", "Title", SkeletonText, true),
		col("status", "Status", SkeletonBadge, true),
		col("author_name", "Author", SkeletonAvatar, false),
		col("published_at", "Published", SkeletonDate, true),
	)
	blogPosts.PublicEndpoint = "/public/blog-posts"

	return []Resource{
		programs,
		enrollments,
		define(Workouts, "Workouts", "Workout", "Programs", "title", DirectionAsc,
			"No hay entrenamientos.",
			func() any { return &entity.Workout{} },
			col("title", "Title", SkeletonText, true),
			col("difficulty", "Difficulty", SkeletonBadge, true),
			col("duration_minutes", "Minutes", SkeletonNumber, true),
			col("calories_burned", "Calories", SkeletonNumber, true),
		),
		define(FoodItems, "Food Items", "Food Item", "Nutrition", "name", DirectionAsc,
			"No hay alimentos en el catálogo.",
			func() any { return &entity.FoodItem{} },
			col("name", "Name", SkeletonText, true),
			col("calories", "Calories", SkeletonNumber, true),
			col("protein", "Protein", SkeletonNumber, true),
			col("carbs", "Carbs", SkeletonNumber, true),
			col("fat", "Fat", SkeletonNumber, true),
		),
		define(FoodCategories, "Food Categories", "Food Category", "Nutrition", "name", DirectionAsc,
			"No hay categorías de alimentos.",
			func() any { return &entity.FoodCategory{} },
			col("name", "Name", SkeletonText, true),
			col("slug", "Slug", SkeletonText, false),
		),
		define(Units, "Units", "Unit", "Nutrition", "name", DirectionAsc,
			"No hay unidades de medida.",
			func() any { return &entity.Unit{} },
			col("name", "Name", SkeletonText, true),
			col("abbreviation", "Abbreviation", SkeletonText, false),
			col("type", "Type", SkeletonBadge, true),
		),
		blogPosts,
		define(BlogCategories, "Blog Categories", "Blog Category", "Content", "name", DirectionAsc,
			"No hay categorías del blog.",
			func() any { return &entity.BlogCategory{} },
			col("name", "Name", SkeletonText, true),
			col("slug", "Slug", SkeletonText, false),
		),
		testimonials,
		define(Invoices, "Invoices", "Invoice", "Billing", "issued_at", DirectionDesc,
			"No hay facturas.",
			func() any { return &entity.Invoice{} },
			col("number", "Number", SkeletonText, true),
			col("customer_name", "Customer", SkeletonAvatar, true),
			col("status", "Status", SkeletonBadge, true),
			col("total", "Total", SkeletonNumber, true),
			col("issued_at", "Issued", SkeletonDate, true),
		),
		define(PaymentMethods, "Payment Methods", "Payment Method", "Billing", "name", DirectionAsc,
			"No hay medios de pago.",
			func() any { return &entity.PaymentMethod{} },
			col("name", "Name", SkeletonText, true),
			col("provider", "Provider", SkeletonText, true),
			col("type", "Type", SkeletonBadge, true),
			col("is_active", "Active", SkeletonBadge, true),
		),
		define(OnboardingForms, "Onboarding Forms", "Onboarding Form", "Clients", "created_at", DirectionDesc,
			"No hay formularios de onboarding.",
			func() any { return &entity.OnboardingForm{} },
			col("title", "Title", SkeletonText, true),
			col("is_active", "Active", SkeletonBadge, true),
		),
		define(Users, "Users", "User", "Clients", "created_at", DirectionDesc,
			"No hay usuarios.",
			func() any { return &entity.User{} },
			col("name", "Name", SkeletonAvatar, true),
			col("email", "Email", SkeletonText, true),
			col("status", "Status", SkeletonBadge, true),
			col("created_at", "Joined", SkeletonDate, true),
		),
		define(StaffAccounts, "Staff Accounts", "Staff Account", "Access", "name", DirectionAsc,
			"No hay cuentas de staff.",
			func() any { return &entity.StaffAccount{} },
			col("name", "Name", SkeletonAvatar, true),
			col("email", "Email", SkeletonText, true),
			col("position", "Position", SkeletonText, false),
			col("is_active", "Active", SkeletonBadge, true),
		),
		define(Roles, "Roles", "Role", "Access", "name", DirectionAsc,
			"No hay roles definidos.",
			func() any { return &entity.Role{} },
			col("name", "Name", SkeletonText, true),
			col("description", "Description", SkeletonText, false),
		),
		define(Teams, "Teams", "Team", "Access", "name", DirectionAsc,
			"No hay equipos.",
			func() any { return &entity.Team{} },
			col("name", "Name", SkeletonText, true),
			col("member_count", "Members", SkeletonNumber, true),
		),
	}
}

// DefaultLookups opciones de selects servidas por /lookup/{name}.
func DefaultLookups() []Lookup {
	names := []string{Programs, Users, Roles, Teams, Units, PaymentMethods, Workouts}
	out := make([]Lookup, 0, len(names)+2)
	for _, n := range names {
		out = append(out, Lookup{Name: n, Endpoint: "/lookup/" + n})
	}
	out = append(out,
		Lookup{Name: FoodCategories, Endpoint: "/lookup/" + FoodCategories, Tree: true},
		Lookup{Name: BlogCategories, Endpoint: "/lookup/" + BlogCategories, Tree: true},
	)
	return out
}

// Default registro con todos los recursos del panel.
func Default() *Registry {
	return NewRegistry(DefaultResources(), DefaultLookups())
}
