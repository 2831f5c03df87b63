package news

import (
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var reLinkDate = regexp.MustCompile(`/(\d{4})/(\d{1,2})/(\d{1,2})/`)

type YearMonth struct {
	Year  int
	Month time.Month
}

// Months lists every month from January of the cutoff's year through the
// month of now, oldest first. Months after now are never included.
func Months(cutoff, now time.Time) []YearMonth {
	var months []YearMonth
	for year := cutoff.Year(); year <= now.Year(); year++ {
		for month := time.January; month <= time.December; month++ {
			if year == now.Year() && month > now.Month() {
				break
			}
			months = append(months, YearMonth{Year: year, Month: month})
		}
	}
	return months
}

// DateFromLink extracts the publish date embedded in a link such as
// https://www.theverge.com/2023/5/10/some-slug. Links without a /YYYY/M/D/
// segment, or with one that is not a real calendar date, yield false.
func DateFromLink(link string) (time.Time, bool) {
	m := reLinkDate.FindStringSubmatch(link)
	if m == nil {
		return time.Time{}, false
	}

	year, _ := strconv.Atoi(m[1])
	month, _ := strconv.Atoi(m[2])
	day, _ := strconv.Atoi(m[3])

	d := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if d.Year() != year || int(d.Month()) != month || d.Day() != day {
		return time.Time{}, false
	}
	return d, true
}

// ResolveLink makes href absolute against base. Absolute hrefs are returned as is.
func ResolveLink(base *url.URL, href string) (string, error) {
	ref, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return "", err
	}
	if ref.IsAbs() {
		return ref.String(), nil
	}
	return base.ResolveReference(ref).String(), nil
}
