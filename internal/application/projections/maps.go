package projections

import (
	"time"

	"github.com/shopspring/decimal"

	domainAdmin "fitfront/internal/domain/admin"
	domainBlog "fitfront/internal/domain/blog"
	domainCategory "fitfront/internal/domain/category"
	domainCourse "fitfront/internal/domain/course"
	domainOrder "fitfront/internal/domain/order"
	domainProduct "fitfront/internal/domain/product"
	domainPromo "fitfront/internal/domain/promocode"
	domainService "fitfront/internal/domain/service"
	domainUser "fitfront/internal/domain/user"
	"fitfront/internal/reconcile"
)

// Mapping from raw upstream objects to domain structs. Catalog entities have
// mostly stable shapes, but individual field names still drift between
// upstream versions, so every field goes through the candidate-path scan.

func mapProduct(raw reconcile.Raw) domainProduct.Product {
	price, _ := reconcile.DecimalAt(raw, "price", "product_price", "unit_price", "cost")
	return domainProduct.Product{
		ID:          reconcile.StringAt(raw, "", "id", "_id", "product_id"),
		Name:        reconcile.StringAt(raw, "", "name", "product_name", "title"),
		Description: reconcile.StringAt(raw, "", "description", "desc", "details"),
		Price:       price,
		Stock:       reconcile.IntAt(raw, "stock", "quantity", "stock_quantity", "in_stock"),
		ImageURL:    reconcile.StringAt(raw, "", "image_url", "image", "imageUrl", "photo"),
		CategoryID:  reconcile.StringAt(raw, "", "category_id", "categoryId", "category.id", "category"),
	}
}

func mapCategory(raw reconcile.Raw) domainCategory.Category {
	return domainCategory.Category{
		ID:          reconcile.StringAt(raw, "", "id", "_id", "category_id"),
		Name:        reconcile.StringAt(raw, "", "name", "category_name", "title"),
		Description: reconcile.StringAt(raw, "", "description", "desc"),
	}
}

func mapCourse(raw reconcile.Raw) domainCourse.Course {
	price, _ := reconcile.DecimalAt(raw, "price", "course_price", "cost")
	c := domainCourse.Course{
		ID:          reconcile.StringAt(raw, "", "id", "_id", "course_id"),
		Title:       reconcile.StringAt(raw, "", "title", "course_title", "name", "course_name"),
		Description: reconcile.StringAt(raw, "", "description", "desc", "details"),
		Price:       price,
		ImageURL:    reconcile.StringAt(raw, "", "image_url", "image", "imageUrl", "thumbnail"),
	}
	for _, m := range reconcile.ListAt(raw, "modules", "course_modules", "sections") {
		mod := domainCourse.Module{
			ID:       reconcile.StringAt(m, "", "id", "_id", "module_id"),
			CourseID: c.ID,
			Title:    reconcile.StringAt(m, "", "title", "name", "module_title"),
			Position: reconcile.IntAt(m, "position", "order", "sort_order"),
		}
		for _, ch := range reconcile.ListAt(m, "chapters", "lessons", "module_chapters") {
			mod.Chapters = append(mod.Chapters, domainCourse.Chapter{
				ID:       reconcile.StringAt(ch, "", "id", "_id", "chapter_id"),
				ModuleID: mod.ID,
				Title:    reconcile.StringAt(ch, "", "title", "name", "chapter_title"),
				Content:  reconcile.StringAt(ch, "", "content", "body", "text"),
				VideoURL: reconcile.StringAt(ch, "", "video_url", "video", "videoUrl"),
				Position: reconcile.IntAt(ch, "position", "order", "sort_order"),
			})
		}
		c.Modules = append(c.Modules, mod)
	}
	return c
}

func mapBlogPost(raw reconcile.Raw) domainBlog.Post {
	return domainBlog.Post{
		ID:         reconcile.StringAt(raw, "", "id", "_id", "blog_id", "post_id"),
		Title:      reconcile.StringAt(raw, "", "title", "blog_title", "name"),
		Content:    reconcile.StringAt(raw, "", "content", "body", "text", "blog_content"),
		Author:     reconcile.StringAt(raw, "", "author", "author_name", "writer", "created_by"),
		CategoryID: reconcile.StringAt(raw, "", "category_id", "categoryId", "category.id", "category"),
		ImageURL:   reconcile.StringAt(raw, "", "image_url", "image", "imageUrl", "cover"),
		CreatedAt:  reconcile.ExtractDate(raw),
	}
}

func mapBlogCategory(raw reconcile.Raw) domainBlog.Category {
	return domainBlog.Category{
		ID:   reconcile.StringAt(raw, "", "id", "_id", "category_id"),
		Name: reconcile.StringAt(raw, "", "name", "category_name", "title"),
	}
}

func mapService(raw reconcile.Raw) domainService.Service {
	price, _ := reconcile.DecimalAt(raw, "price", "service_price", "cost", "rate")
	return domainService.Service{
		ID:              reconcile.StringAt(raw, "", "id", "_id", "service_id"),
		Name:            reconcile.StringAt(raw, "", "name", "service_name", "title"),
		Description:     reconcile.StringAt(raw, "", "description", "desc", "details"),
		Price:           price,
		DurationMinutes: reconcile.IntAt(raw, "duration_minutes", "duration", "length_minutes"),
		ImageURL:        reconcile.StringAt(raw, "", "image_url", "image", "imageUrl"),
	}
}

func mapBooking(raw reconcile.Raw) domainService.Booking {
	return domainService.Booking{
		ID:            reconcile.StringAt(raw, "", "id", "_id", "booking_id"),
		ServiceID:     reconcile.StringAt(raw, "", "service_id", "serviceId", "service.id"),
		ServiceName:   reconcile.StringAt(raw, "", "service_name", "serviceName", "service.name", "service.title"),
		CustomerName:  reconcile.StringAt(raw, reconcile.Placeholder, "customer_name", "name", "full_name", "user.name"),
		CustomerEmail: reconcile.StringAt(raw, reconcile.Placeholder, "customer_email", "email", "user.email"),
		CustomerPhone: reconcile.StringAt(raw, reconcile.Placeholder, "customer_phone", "phone", "mobile", "user.phone"),
		Date:          reconcile.StringAt(raw, "", "date", "booking_date", "scheduled_at", "slot"),
		Notes:         reconcile.StringAt(raw, "", "notes", "note", "message"),
		Status:        reconcile.NormalizeStatus(raw["status"]),
		CreatedAt:     reconcile.ExtractDate(raw),
	}
}

func mapUser(raw reconcile.Raw) domainUser.User {
	return domainUser.User{
		ID:        reconcile.StringAt(raw, "", "id", "_id", "user_id"),
		Name:      reconcile.StringAt(raw, "", "name", "full_name", "user_name", "username"),
		Email:     reconcile.StringAt(raw, "", "email", "user_email"),
		Phone:     reconcile.StringAt(raw, "", "phone", "mobile", "phone_number"),
		CreatedAt: reconcile.ExtractDate(raw),
	}
}

func mapAdmin(raw reconcile.Raw) domainAdmin.Admin {
	return domainAdmin.Admin{
		ID:        reconcile.StringAt(raw, "", "id", "_id", "admin_id"),
		Name:      reconcile.StringAt(raw, "", "name", "full_name", "admin_name", "username"),
		Email:     reconcile.StringAt(raw, "", "email", "admin_email"),
		Phone:     reconcile.StringAt(raw, "", "phone", "mobile", "phone_number"),
		Role:      reconcile.StringAt(raw, domainAdmin.RoleAdmin, "role", "admin_role"),
		CreatedAt: reconcile.ExtractDate(raw),
	}
}

func mapPromoCode(raw reconcile.Raw) domainPromo.PromoCode {
	discount, _ := reconcile.DecimalAt(raw, "discount_value", "discount", "percent", "discount_percent")
	return domainPromo.PromoCode{
		ID:            reconcile.StringAt(raw, "", "id", "_id", "promo_id", "promocode_id"),
		Code:          reconcile.StringAt(raw, "", "code", "promo_code", "promocode"),
		DiscountValue: discount,
		ValidFrom:     parseWindowTime(reconcile.StringAt(raw, "", "valid_from", "start_date", "starts_at")),
		ValidTo:       parseWindowTime(reconcile.StringAt(raw, "", "valid_to", "end_date", "expires_at")),
	}
}

// parseWindowTime parses promo validity bounds. Unparseable bounds stay
// zero, which IsActive treats as open.
func parseWindowTime(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02 15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

// mapOrder builds a domain order from a reconciled record plus the discount
// fields, which only ever appear under stable names.
func mapOrder(raw reconcile.Raw, rec reconcile.Record) domainOrder.Order {
	discount, _ := reconcile.DecimalAt(raw, "discount_value", "discount", "discount_percent")
	o := domainOrder.Order{
		ID:            rec.ID,
		CustomerName:  rec.CustomerName,
		CustomerEmail: rec.CustomerEmail,
		Status:        rec.Status,
		CreatedAt:     rec.CreatedAt,
		OriginalTotal: rec.TotalPrice,
		DiscountValue: discount,
		PromoCode:     reconcile.StringAt(raw, "", "promo_code", "promocode", "coupon"),
	}
	for _, it := range rec.Items {
		o.Items = append(o.Items, domainOrder.Item{
			ProductID: it.ProductID,
			Name:      it.Name,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
		})
	}
	if o.DiscountValue.IsNegative() {
		o.DiscountValue = decimal.Zero
	}
	return o
}
