package attendance

import (
	"time"

	"github.com/cmlabs-hris/backoffice-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/backoffice-backend-go/internal/domain/staff"
	"github.com/cmlabs-hris/backoffice-backend-go/internal/pkg/timeofday"
)

const dateLayout = "2006-01-02"

// Aggregator reduces a roster and its clock events into per-member summaries.
// It holds no state between calls and never fails: empty input yields zero summaries.
type Aggregator struct {
	lateCutoff   int
	absentPolicy attendance.AbsentPolicy
}

// NewAggregator builds an aggregator. lateCutoff is minutes since midnight; a check-in
// at or before it is Present, after it Late.
func NewAggregator(lateCutoff int, absentPolicy attendance.AbsentPolicy) *Aggregator {
	if absentPolicy == "" {
		absentPolicy = attendance.AbsentFullPeriod
	}
	return &Aggregator{lateCutoff: lateCutoff, absentPolicy: absentPolicy}
}

// Aggregate computes one summary per roster member for period plus the rollup of the
// as-of day, which is the earlier of period end and today. Days after today are skipped.
func (a *Aggregator) Aggregate(roster []staff.StaffMember, records []attendance.Record, period attendance.Period, today time.Time) attendance.Report {
	start := attendance.DateOf(period.Start)
	end := attendance.DateOf(period.End)
	asOf := end
	if t := attendance.DateOf(today); t.Before(asOf) {
		asOf = t
	}

	events := groupByStaffAndDate(roster, records, start, end)

	report := attendance.Report{
		PeriodStart: start.Format(dateLayout),
		PeriodEnd:   end.Format(dateLayout),
		AsOf:        asOf.Format(dateLayout),
		Summaries:   make([]attendance.Summary, 0, len(roster)),
		Rollup:      attendance.Rollup{TotalStaff: len(roster)},
	}

	// A period entirely in the future has no evaluable day.
	hasAsOfDay := !asOf.Before(start)
	if hasAsOfDay {
		d := asOf.Format(dateLayout)
		report.Rollup.Date = &d
	}

	for _, member := range roster {
		days := events[member.ID]
		first := a.firstCountedDay(member, start)
		summary := a.summarize(member, days, first, asOf)

		switch {
		case !hasAsOfDay:
		case first.After(asOf):
			// Not yet joined on the as-of day.
			report.Rollup.TotalStaff--
		default:
			current := a.classify(asOf, days[asOf.Format(dateLayout)])
			summary.Today = &current

			switch current.Status {
			case attendance.StatusLate:
				report.Rollup.Present++
				report.Rollup.Late++
			case attendance.StatusPresent:
				report.Rollup.Present++
			default:
				report.Rollup.Absent++
			}
		}

		report.Summaries = append(report.Summaries, summary)
	}

	return report
}

func (a *Aggregator) summarize(member staff.StaffMember, days map[string][]int, first, last time.Time) attendance.Summary {
	summary := attendance.Summary{
		StaffID:    member.ID,
		Name:       member.Name,
		Department: member.Department,
		Position:   member.Position,
		Days:       []attendance.Day{},
	}

	sum, count := 0, 0
	for d := first; !d.After(last); d = d.AddDate(0, 0, 1) {
		times := days[d.Format(dateLayout)]
		day := a.classify(d, times)
		summary.Days = append(summary.Days, day)

		switch day.Status {
		case attendance.StatusAbsent:
			summary.DaysAbsent++
			continue
		case attendance.StatusLate:
			summary.DaysLate++
		}
		summary.DaysPresent++
		sum += minOf(times)
		count++
	}

	summary.AverageCheckIn = attendance.NoCheckIn
	summary.AverageCheckIn12h = attendance.NoCheckIn
	if count > 0 {
		avg := roundedMean(sum, count)
		summary.AverageCheckIn = timeofday.Format(avg)
		summary.AverageCheckIn12h = timeofday.Format12(avg)
	}
	return summary
}

func (a *Aggregator) classify(d time.Time, times []int) attendance.Day {
	day := attendance.Day{Date: d.Format(dateLayout), Status: attendance.StatusAbsent}
	if len(times) == 0 {
		return day
	}

	in, out := minOf(times), maxOf(times)
	checkIn, checkOut := timeofday.Format(in), timeofday.Format(out)
	day.CheckIn, day.CheckOut = &checkIn, &checkOut

	day.Status = attendance.StatusPresent
	if in > a.lateCutoff {
		day.Status = attendance.StatusLate
	}
	return day
}

func (a *Aggregator) firstCountedDay(member staff.StaffMember, start time.Time) time.Time {
	if a.absentPolicy != attendance.AbsentSinceJoined || member.JoinedOn == nil {
		return start
	}
	if joined := attendance.DateOf(*member.JoinedOn); joined.After(start) {
		return joined
	}
	return start
}

// groupByStaffAndDate buckets parsed clock minutes by staff ID then date key. Records of
// unknown staff, outside the period, or with unparsable times are dropped.
func groupByStaffAndDate(roster []staff.StaffMember, records []attendance.Record, start, end time.Time) map[string]map[string][]int {
	grouped := make(map[string]map[string][]int, len(roster))
	for _, m := range roster {
		grouped[m.ID] = make(map[string][]int)
	}

	for _, r := range records {
		days, ok := grouped[r.StaffID]
		if !ok {
			continue
		}
		d := attendance.DateOf(r.Date)
		if d.Before(start) || d.After(end) {
			continue
		}
		m, err := timeofday.Parse(r.Time)
		if err != nil {
			continue
		}
		key := d.Format(dateLayout)
		days[key] = append(days[key], m)
	}
	return grouped
}

// roundedMean is sum/count to the nearest minute; an exact half rounds down.
func roundedMean(sum, count int) int {
	q, r := sum/count, sum%count
	if 2*r > count {
		q++
	}
	return q
}

func minOf(values []int) int {
	m := values[0]
	for _, v := range values[1:] {
		if v < m {
			m = v
		}
	}
	return m
}

func maxOf(values []int) int {
	m := values[0]
	for _, v := range values[1:] {
		if v > m {
			m = v
		}
	}
	return m
}
