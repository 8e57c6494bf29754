package pipeline

import (
	"fmt"
	"strings"

	"go-review-analytics/internal/model"
)

const disneyHeader = "Review_ID,Rating,Year_Month,Reviewer_Location,Review_Text,Branch"

func rec(park, location, date string, rating int) model.Record {
	return model.Record{
		Rating:   rating,
		Park:     park,
		Location: location,
		Date:     model.ParseYearMonth(date),
	}
}

// sampleDataset is a small mixed dataset used across the query tests.
func sampleDataset() *Dataset {
	return NewDataset([]model.Record{
		rec("Disneyland_Paris", "France", "2018-4", 4),
		rec("Disneyland_Paris", "United Kingdom", "2018-4", 5),
		rec("Disneyland_Paris", "United Kingdom", "2019-1", 3),
		rec("Disneyland_Paris", model.Unknown, "missing", 2),
		rec("Disneyland_HongKong", "Australia", "2018-12", 5),
		rec("Disneyland_HongKong", "Australia", "2018-12", 4),
		rec("Disneyland_HongKong", "Philippines", "2019-4", 3),
		rec("Disneyland_California", "United States", "2019-7", 5),
	})
}

// disneyCSV renders good well-formed rows followed by the given raw lines.
func disneyCSV(good int, extra ...string) string {
	parks := []string{"Disneyland_HongKong", "Disneyland_California", "Disneyland_Paris"}
	var b strings.Builder
	b.WriteString(disneyHeader + "\n")
	for i := 0; i < good; i++ {
		fmt.Fprintf(&b, "%d,%d,2019-%d,Australia,\"Great, \"\"fun\"\" day\",%s\n",
			1000+i, i%5+1, i%12+1, parks[i%len(parks)])
	}
	for _, line := range extra {
		b.WriteString(line + "\n")
	}
	return b.String()
}
