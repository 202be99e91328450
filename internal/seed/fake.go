package seed

import (
	"fmt"
	"strings"
	"time"

	"github.com/brianvoe/gofakeit/v6"

	"github.com/rentloop/rentloop/internal/model"
)

// fakeCategories is fixed so generated items land in recognisable buckets.
var fakeCategories = []model.Category{
	{ID: 1, Name: "Tools", Description: "Power tools and hand tools"},
	{ID: 2, Name: "Outdoors", Description: "Camping, hiking and water sports"},
	{ID: 3, Name: "Electronics", Description: "Cameras, speakers and projectors"},
	{ID: 4, Name: "Party", Description: "Tables, chairs and decorations"},
	{ID: 5, Name: "Vehicles", Description: "Bikes, scooters and trailers"},
}

// Generate builds a random Dataset. The same seed yields the same dataset;
// a zero seed uses the current time.
func Generate(seed int64, users, items int) *Dataset {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	if users <= 0 {
		users = 1
	}
	f := gofakeit.New(seed)

	ds := &Dataset{
		Categories: append([]model.Category(nil), fakeCategories...),
	}

	for i := 1; i <= users; i++ {
		first, last := f.FirstName(), f.LastName()
		u := model.User{
			ID:          int64(i),
			Email:       fmt.Sprintf("%s.%s%d@example.com", strings.ToLower(first), strings.ToLower(last), i),
			PhoneNumber: f.Phone(),
			FirstName:   first,
			LastName:    last,
		}
		if f.Bool() {
			nick := f.Username()
			u.NickName = &nick
		}
		ds.Users = append(ds.Users, u)
	}

	start := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC)
	for i := 1; i <= items; i++ {
		it := model.Item{
			ID:          int64(i),
			Name:        f.ProductName(),
			Description: f.ProductDescription(),
			CategoryID:  fakeCategories[f.Number(0, len(fakeCategories)-1)].ID,
			OwnerID:     int64(f.Number(1, users)),
			Price:       int64(f.Number(5, 250)) * 100,
			Quantity:    f.Number(1, 3),
			Available:   f.Number(1, 10) > 2,
			DateListed:  f.DateRange(start, end).UTC().Truncate(time.Second),
		}
		if f.Bool() {
			img := fmt.Sprintf("https://picsum.photos/seed/%s/800/600", f.UUID())
			it.Image = &img
		}
		ds.Items = append(ds.Items, it)
	}

	return ds
}
