package report

import (
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/producao-espumas/internal/application/dto"
	"github.com/jhoicas/producao-espumas/internal/domain/entity"
	"github.com/jhoicas/producao-espumas/internal/domain/repository"
)

// AllFoamTypes valor del filtro que no restringe el tipo de espuma.
const AllFoamTypes = "Todos"

const labelLayout = "02/01/2006"

// Filter filtros del dashboard. From/To cero = límite de los datos; To es inclusivo.
type Filter struct {
	FoamType string
	From     time.Time
	To       time.Time
	Bucket   string
}

// ParseFilter interpreta los parámetros de consulta. Fechas YYYY-MM-DD; bucket por defecto "dia".
func ParseFilter(req dto.DashboardRequest) (Filter, error) {
	f := Filter{FoamType: strings.TrimSpace(req.FoamType), Bucket: strings.TrimSpace(req.Bucket)}
	if strings.EqualFold(f.FoamType, AllFoamTypes) {
		f.FoamType = ""
	}
	switch f.Bucket {
	case "":
		f.Bucket = dto.BucketDay
	case dto.BucketDay, dto.BucketWeek, dto.BucketMonth:
	default:
		return Filter{}, errInvalidBucket
	}
	var err error
	if s := strings.TrimSpace(req.From); s != "" {
		if f.From, err = time.Parse(dto.DateLayout, s); err != nil {
			return Filter{}, err
		}
	}
	if s := strings.TrimSpace(req.To); s != "" {
		if f.To, err = time.Parse(dto.DateLayout, s); err != nil {
			return Filter{}, err
		}
	}
	if !f.From.IsZero() && !f.To.IsZero() && f.To.Before(f.From) {
		return Filter{}, errInvalidRange
	}
	return f, nil
}

// Summarize arma el dashboard a partir de las filas bloco × consumo.
// Los totales de blocos cuentan un registro por código; el consumo suma todas las filas.
func Summarize(rows []repository.ProductionRow, f Filter) *dto.DashboardResponse {
	if f.Bucket == "" {
		f.Bucket = dto.BucketDay
	}
	out := &dto.DashboardResponse{
		FoamTypes:        []string{},
		FoamType:         f.FoamType,
		Bucket:           f.Bucket,
		ByComponent:      []dto.ComponentConsumptionTotal{},
		Trend:            []dto.TrendPoint{},
		TrendByComponent: []dto.ComponentTrendPoint{},
		Consumption:      []dto.ConsumptionDetail{},
		Batches:          []dto.BatchRow{},
	}
	if len(rows) == 0 {
		return out
	}

	types := map[string]bool{}
	minDate, maxDate := day(rows[0].ProductionDate), day(rows[0].ProductionDate)
	for _, r := range rows {
		if r.FoamType != "" {
			types[r.FoamType] = true
		}
		d := day(r.ProductionDate)
		if d.Before(minDate) {
			minDate = d
		}
		if d.After(maxDate) {
			maxDate = d
		}
	}
	for t := range types {
		out.FoamTypes = append(out.FoamTypes, t)
	}
	sort.Strings(out.FoamTypes)
	out.MinDate = minDate.Format(dto.DateLayout)
	out.MaxDate = maxDate.Format(dto.DateLayout)

	from, to := f.From, f.To
	if from.IsZero() {
		from = minDate
	}
	if to.IsZero() {
		to = maxDate
	}
	out.From = from.Format(dto.DateLayout)
	out.To = to.Format(dto.DateLayout)
	until := day(to).AddDate(0, 0, 1)

	seen := map[string]bool{}
	byType := map[string]int{}
	byComponent := map[string]decimal.Decimal{}
	trend := map[time.Time]decimal.Decimal{}
	type trendKey struct {
		bucket    time.Time
		component string
	}
	trendByComponent := map[trendKey]decimal.Decimal{}

	for _, r := range rows {
		d := day(r.ProductionDate)
		if d.Before(day(from)) || !d.Before(until) {
			continue
		}
		if f.FoamType != "" && r.FoamType != f.FoamType {
			continue
		}

		if !seen[r.Code] {
			seen[r.Code] = true
			out.TotalBatches++
			if entity.IsConformity(r.Conformity) {
				out.ConformingBatches++
			}
			byType[r.FoamType]++
			out.Batches = append(out.Batches, dto.BatchRow{
				Code:           r.Code,
				ProductionDate: d.Format(dto.DateLayout),
				FoamType:       r.FoamType,
				Color:          r.Color,
				Height:         r.Height,
				Conformity:     r.Conformity,
				Notes:          r.Notes,
			})
		}

		if r.Component == nil || r.QuantityUsed == nil {
			continue
		}
		q := *r.QuantityUsed
		byComponent[*r.Component] = byComponent[*r.Component].Add(q)
		b := BucketStart(d, f.Bucket)
		trend[b] = trend[b].Add(q)
		k := trendKey{bucket: b, component: *r.Component}
		trendByComponent[k] = trendByComponent[k].Add(q)
		out.Consumption = append(out.Consumption, dto.ConsumptionDetail{
			Code:           r.Code,
			ProductionDate: d.Format(labelLayout),
			FoamType:       r.FoamType,
			Component:      *r.Component,
			Quantity:       q,
		})
	}

	if f.FoamType == "" {
		for t, n := range byType {
			out.ByFoamType = append(out.ByFoamType, dto.FoamTypeCount{FoamType: t, Batches: n})
		}
		sort.Slice(out.ByFoamType, func(i, j int) bool {
			a, b := out.ByFoamType[i], out.ByFoamType[j]
			if a.Batches != b.Batches {
				return a.Batches > b.Batches
			}
			return a.FoamType < b.FoamType
		})
	}

	for c, q := range byComponent {
		out.ByComponent = append(out.ByComponent, dto.ComponentConsumptionTotal{Component: c, Quantity: q})
	}
	sort.Slice(out.ByComponent, func(i, j int) bool {
		a, b := out.ByComponent[i], out.ByComponent[j]
		if !a.Quantity.Equal(b.Quantity) {
			return a.Quantity.GreaterThan(b.Quantity)
		}
		return a.Component < b.Component
	})

	buckets := make([]time.Time, 0, len(trend))
	for b := range trend {
		buckets = append(buckets, b)
	}
	sort.Slice(buckets, func(i, j int) bool { return buckets[i].Before(buckets[j]) })
	for _, b := range buckets {
		out.Trend = append(out.Trend, dto.TrendPoint{Period: b.Format(labelLayout), Quantity: trend[b]})
	}

	keys := make([]trendKey, 0, len(trendByComponent))
	for k := range trendByComponent {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if !keys[i].bucket.Equal(keys[j].bucket) {
			return keys[i].bucket.Before(keys[j].bucket)
		}
		return keys[i].component < keys[j].component
	})
	for _, k := range keys {
		out.TrendByComponent = append(out.TrendByComponent, dto.ComponentTrendPoint{
			Period:    k.bucket.Format(labelLayout),
			Component: k.component,
			Quantity:  trendByComponent[k],
		})
	}
	return out
}

// BucketStart inicio del período de d: el mismo día, el lunes de su semana o el día 1 del mes.
func BucketStart(d time.Time, bucket string) time.Time {
	d = day(d)
	switch bucket {
	case dto.BucketWeek:
		offset := (int(d.Weekday()) + 6) % 7
		return d.AddDate(0, 0, -offset)
	case dto.BucketMonth:
		return time.Date(d.Year(), d.Month(), 1, 0, 0, 0, 0, time.UTC)
	default:
		return d
	}
}

func day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
