package course_test

import (
	"testing"

	"github.com/shopspring/decimal"

	"fitfront/internal/domain/course"
)

func TestCourseValidation(t *testing.T) {
	valid := course.Course{Title: "Yoga Basics", Price: decimal.Zero}
	if err := valid.Validate(); err != nil {
		t.Errorf("Validate() on valid course = %v", err)
	}

	empty := course.Course{Title: "   "}
	if err := empty.Validate(); err == nil {
		t.Error("Validate() should reject an empty title")
	}

	negative := course.Course{Title: "Yoga", Price: decimal.NewFromInt(-10)}
	if err := negative.Validate(); err != course.ErrNegativePrice {
		t.Errorf("Validate() = %v, want ErrNegativePrice", err)
	}

	badModule := course.Course{Title: "Yoga", Modules: []course.Module{{Title: ""}}}
	if err := badModule.Validate(); err == nil {
		t.Error("Validate() should reject a module with an empty title")
	}
}

func TestCourseContainment(t *testing.T) {
	c := course.Course{
		Title: "Strength 101",
		Price: decimal.NewFromInt(120),
		Modules: []course.Module{
			{Title: "Foundations", Chapters: []course.Chapter{{Title: "Warmup"}, {Title: "Squat"}}},
			{Title: "Progressions", Chapters: []course.Chapter{{Title: "Deadlift"}}},
			{Title: "Empty module"},
		},
	}

	if got := c.ChapterCount(); got != 3 {
		t.Errorf("ChapterCount() = %d, want 3", got)
	}
	if c.IsFree() {
		t.Error("paid course reported as free")
	}
	if got := c.PriceLabel(); got != "$120.00" {
		t.Errorf("PriceLabel() = %q, want $120.00", got)
	}

	free := course.Course{Title: "Intro", Price: decimal.Zero}
	if got := free.PriceLabel(); got != "Free" {
		t.Errorf("PriceLabel() on zero price = %q, want Free", got)
	}
}
