package breadcrumb_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/wellness-admin/internal/domain/breadcrumb"
	"github.com/jhoicas/wellness-admin/internal/domain/resource"
)

type E = breadcrumb.Entry

func TestResolve(t *testing.T) {
	r := breadcrumb.NewResolver(resource.Default())

	cases := []struct {
		path string
		want []E
	}{
		{"/", []E{{Label: "Dashboard"}}},
		{"/programs", []E{{Label: "Dashboard", Href: "/"}, {Label: "Programs"}}},
		{"/programs/create", []E{
			{Label: "Dashboard", Href: "/"},
			{Label: "Programs", Href: "/programs"},
			{Label: "Create Program"},
		}},
		{"/food-items/17", []E{
			{Label: "Dashboard", Href: "/"},
			{Label: "Food Items", Href: "/food-items"},
			{Label: "Food Item Details"},
		}},
		{"/invoices/9/edit", []E{
			{Label: "Dashboard", Href: "/"},
			{Label: "Invoices", Href: "/invoices"},
			{Label: "Invoice Details", Href: "/invoices/9"},
			{Label: "Edit Invoice"},
		}},
		{"/settings/", []E{{Label: "Dashboard", Href: "/"}, {Label: "Settings"}}},
		{"/reports/monthly-revenue", []E{{Label: "Dashboard", Href: "/"}, {Label: "Monthly Revenue"}}},
	}
	for _, tc := range cases {
		got := r.Resolve(tc.path)
		if diff := cmp.Diff(tc.want, got); diff != "" {
			t.Errorf("Resolve(%q) mismatch (-want +got):\n%s", tc.path, diff)
		}
	}
}

// Misma entrada => misma salida, y mutar el resultado no contamina llamadas posteriores.
func TestResolve_EsPura(t *testing.T) {
	r := breadcrumb.NewResolver(resource.Default())

	first := r.Resolve("/programs/4/edit")
	first[1].Label = "mutado"
	second := r.Resolve("/programs/4/edit")
	third := r.Resolve("/programs/4/edit")

	assert.Equal(t, "Programs", second[1].Label)
	assert.Equal(t, second, third)
}

func TestHumanize(t *testing.T) {
	assert.Equal(t, "Payment Methods", breadcrumb.Humanize("payment-methods"))
	assert.Equal(t, "Staff Accounts", breadcrumb.Humanize("staff_accounts"))
	assert.Equal(t, "Dashboard", breadcrumb.Humanize(""))
}
