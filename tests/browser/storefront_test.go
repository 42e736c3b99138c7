package browser_test

import (
	"strings"
	"testing"

	"github.com/playwright-community/playwright-go"
)

func TestStorefrontListsProducts(t *testing.T) {
	app := newTestApp(t)
	page := app.newPage(t)

	if _, err := page.Goto(app.BaseURL + "/products"); err != nil {
		t.Fatalf("failed to open the shop page: %v", err)
	}

	heading, err := page.Locator("h1").TextContent()
	if err != nil {
		t.Fatalf("failed to read the page heading: %v", err)
	}
	if heading != "Shop" {
		t.Errorf("heading = %q, want %q", heading, "Shop")
	}

	cards := page.Locator(".card")
	count, err := cards.Count()
	if err != nil {
		t.Fatalf("failed to count product cards: %v", err)
	}
	if count != 2 {
		t.Errorf("product cards = %d, want 2", count)
	}

	body, err := page.Locator("body").TextContent()
	if err != nil {
		t.Fatalf("failed to read the page body: %v", err)
	}
	if !strings.Contains(body, "Resistance Band") {
		t.Errorf("shop page does not show the seeded product name")
	}
}

func TestStorefrontProductDetail(t *testing.T) {
	app := newTestApp(t)
	page := app.newPage(t)

	if _, err := page.Goto(app.BaseURL + "/products/p2"); err != nil {
		t.Fatalf("failed to open the product detail page: %v", err)
	}

	body, err := page.Locator("body").TextContent()
	if err != nil {
		t.Fatalf("failed to read the page body: %v", err)
	}
	if !strings.Contains(body, "Kettlebell 16kg") {
		t.Errorf("detail page does not show the product name")
	}
	if !strings.Contains(body, "Cast iron kettlebell") {
		t.Errorf("detail page does not show the product description")
	}
}

func TestAdminLoginReachesDashboard(t *testing.T) {
	app := newTestApp(t)
	page := app.newPage(t)

	app.adminLogin(t, page)

	heading, err := page.Locator("h1").TextContent()
	if err != nil {
		t.Fatalf("failed to read the dashboard heading: %v", err)
	}
	if !strings.Contains(heading, "Dashboard") {
		t.Errorf("heading = %q, want it to contain %q", heading, "Dashboard")
	}
}

func TestAdminLoginRejectsBadPassword(t *testing.T) {
	app := newTestApp(t)
	page := app.newPage(t)

	if _, err := page.Goto(app.BaseURL + "/admin/login"); err != nil {
		t.Fatalf("failed to open the admin login page: %v", err)
	}
	if err := page.Locator("input[name=Email]").Fill("admin@test.com"); err != nil {
		t.Fatalf("failed to fill email: %v", err)
	}
	if err := page.Locator("input[name=Password]").Fill("wrong-password"); err != nil {
		t.Fatalf("failed to fill password: %v", err)
	}
	if err := page.Locator("button[type=submit]").Click(); err != nil {
		t.Fatalf("failed to click login: %v", err)
	}

	if err := page.Locator(".flash-error").WaitFor(playwright.LocatorWaitForOptions{
		Timeout: playwright.Float(10000),
	}); err != nil {
		t.Fatalf("expected an error flash after a rejected login: %v", err)
	}
	if !strings.Contains(page.URL(), "/admin/login") {
		t.Errorf("rejected login left the login page, URL = %q", page.URL())
	}
}
