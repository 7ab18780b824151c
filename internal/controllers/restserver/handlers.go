package restserver

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"

	"github.com/chrissnell/univtime/internal/store"
	"github.com/chrissnell/univtime/pkg/astro"
	"github.com/chrissnell/univtime/pkg/calerr"
	"github.com/chrissnell/univtime/pkg/chinese"
	"github.com/chrissnell/univtime/pkg/epoch"
	"github.com/chrissnell/univtime/pkg/gregorian"
	"github.com/chrissnell/univtime/pkg/moment"
	"github.com/chrissnell/univtime/pkg/responseformat"
	"github.com/chrissnell/univtime/pkg/solar"
)

const (
	defaultListLimit = 100
	maxListLimit     = 1000
)

// Handlers contains all HTTP handlers for the REST server
type Handlers struct {
	controller *Controller
	formatter  *responseformat.Formatter
}

// NewHandlers creates a new handlers instance
func NewHandlers(ctrl *Controller) *Handlers {
	return &Handlers{
		controller: ctrl,
		formatter:  responseformat.NewFormatter(),
	}
}

func (h *Handlers) fail(w http.ResponseWriter, req *http.Request, err error) {
	status := responseformat.StatusFor(err)
	if errors.Is(err, store.ErrNotFound) {
		status = http.StatusNotFound
	}
	if status >= http.StatusInternalServerError {
		h.controller.logger.Errorw("request failed", "path", req.URL.Path, "error", err)
	}
	h.formatter.WriteErrorStatus(w, req, status, err)
}

func (h *Handlers) badRequest(w http.ResponseWriter, req *http.Request, format string, args ...any) {
	h.formatter.WriteErrorStatus(w, req, http.StatusBadRequest, fmt.Errorf(format, args...))
}

func (h *Handlers) calendarOrDefault(name string) (moment.Calendar, error) {
	if name == "" {
		name = h.controller.engineConfig.DefaultCalendar
	}
	return moment.ParseCalendar(name)
}

// Convert handles GET /convert?from=&to=&date=
func (h *Handlers) Convert(w http.ResponseWriter, req *http.Request) {
	q := req.URL.Query()
	from, err := h.calendarOrDefault(q.Get("from"))
	if err != nil {
		h.fail(w, req, err)
		return
	}
	if q.Get("to") == "" {
		h.badRequest(w, req, "to parameter is required")
		return
	}
	to, err := moment.ParseCalendar(q.Get("to"))
	if err != nil {
		h.fail(w, req, err)
		return
	}

	d, err := moment.ParseDate(from, q.Get("date"))
	if err != nil {
		h.fail(w, req, err)
		return
	}
	out, err := moment.Convert(d, to)
	if err != nil {
		h.fail(w, req, err)
		return
	}
	rd, err := moment.Fixed(d)
	if err != nil {
		h.fail(w, req, err)
		return
	}

	resp := ConvertResponse{
		From:    from.String(),
		To:      to.String(),
		Input:   d.String(),
		Output:  out.String(),
		Fixed:   rd,
		Weekday: epoch.DayName(rd),
	}
	if g, ok := out.(moment.GeologicalDate); ok {
		p := g.Placement()
		resp.Placement = &p
	}
	h.formatter.WriteResponse(w, req, http.StatusOK, resp)
}

// GetFixed handles GET /fixed/{calendar}?date=
func (h *Handlers) GetFixed(w http.ResponseWriter, req *http.Request) {
	cal, err := moment.ParseCalendar(mux.Vars(req)["calendar"])
	if err != nil {
		h.fail(w, req, err)
		return
	}
	d, err := moment.ParseDate(cal, req.URL.Query().Get("date"))
	if err != nil {
		h.fail(w, req, err)
		return
	}
	rd, err := moment.Fixed(d)
	if err != nil {
		h.fail(w, req, err)
		return
	}
	h.formatter.WriteResponse(w, req, http.StatusOK, FixedResponse{
		Calendar:  cal.String(),
		Date:      d.String(),
		Fixed:     rd,
		JulianDay: epoch.JDFromFixed(float64(rd)),
		Weekday:   epoch.DayName(rd),
	})
}

// ExplainKey handles GET /moment/{key}, decoding a lexical key into its
// calendar views. ?zone= selects the local view, defaulting to the
// configured zone.
func (h *Handlers) ExplainKey(w http.ResponseWriter, req *http.Request) {
	m, err := moment.ParseKey(mux.Vars(req)["key"])
	if err != nil {
		h.fail(w, req, err)
		return
	}

	resp := MomentResponse{
		Key:       m.Key(),
		Moment:    m.String(),
		Precision: m.Precision().String(),
		Views:     make(map[string]string),
	}
	for _, cal := range moment.Calendars() {
		if v, err := m.In(cal); err == nil {
			resp.Views[cal.String()] = v.String()
		}
	}

	zone := req.URL.Query().Get("zone")
	if zone == "" {
		zone = h.controller.engineConfig.DefaultZone
	}
	if v, err := m.InZone(h.controller.Zones, zone); err == nil {
		resp.Zone = zone
		resp.Local = v.String()
	} else {
		h.controller.logger.Debugw("no local view", "key", resp.Key, "zone", zone, "error", err)
	}

	h.formatter.WriteResponse(w, req, http.StatusOK, resp)
}

func parseRD(req *http.Request) (float64, error) {
	s := req.URL.Query().Get("rd")
	if s == "" {
		return 0, errors.New("rd parameter is required")
	}
	rd, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(rd) || math.IsInf(rd, 0) {
		return 0, fmt.Errorf("invalid rd %q", s)
	}
	if rd < float64(gregorian.ToFixed(gregorian.MinYear, 1, 1)) || rd > float64(gregorian.ToFixed(gregorian.MaxYear, 12, 31)) {
		return 0, calerr.InvalidDate("rd %v outside the supported range", rd)
	}
	return rd, nil
}

func civil(t float64) string {
	return gregorian.FromFixed(int64(math.Floor(t))).String()
}

// GetNewMoon handles GET /astro/new-moon?rd=
func (h *Handlers) GetNewMoon(w http.ResponseWriter, req *http.Request) {
	rd, err := parseRD(req)
	if err != nil {
		if !errors.Is(err, calerr.ErrInvalidDate) {
			h.badRequest(w, req, "%v", err)
			return
		}
		h.fail(w, req, err)
		return
	}
	prev, err := astro.NewMoonBefore(rd)
	if err != nil {
		h.fail(w, req, err)
		return
	}
	next, err := astro.NewMoonAtOrAfter(rd)
	if err != nil {
		h.fail(w, req, err)
		return
	}
	h.formatter.WriteResponse(w, req, http.StatusOK, NewMoonResponse{
		RD:           rd,
		Phase:        astro.LunarPhase(rd),
		Previous:     prev,
		PreviousDate: civil(prev),
		Next:         next,
		NextDate:     civil(next),
	})
}

// GetSolarLongitude handles GET /astro/solar-longitude?rd=
func (h *Handlers) GetSolarLongitude(w http.ResponseWriter, req *http.Request) {
	rd, err := parseRD(req)
	if err != nil {
		if !errors.Is(err, calerr.ErrInvalidDate) {
			h.badRequest(w, req, "%v", err)
			return
		}
		h.fail(w, req, err)
		return
	}
	day := int64(math.Floor(rd))
	h.formatter.WriteResponse(w, req, http.StatusOK, SolarLongitudeResponse{
		RD:        rd,
		Longitude: astro.SolarLongitude(rd),
		MajorTerm: chinese.CurrentMajorSolarTerm(day),
		MinorTerm: chinese.CurrentMinorSolarTerm(day),
	})
}

// GetDaylight handles GET /astro/daylight?rd=&lat=&lon=&elevation=&zone=
func (h *Handlers) GetDaylight(w http.ResponseWriter, req *http.Request) {
	rd, err := parseRD(req)
	if err != nil {
		if !errors.Is(err, calerr.ErrInvalidDate) {
			h.badRequest(w, req, "%v", err)
			return
		}
		h.fail(w, req, err)
		return
	}
	loc, err := parseLocation(req)
	if err != nil {
		h.badRequest(w, req, "%v", err)
		return
	}

	day := int64(math.Floor(rd))
	resp := DaylightResponse{RD: day, Date: civil(rd)}
	rise, riseErr := solar.Sunrise(day, loc)
	set, setErr := solar.Sunset(day, loc)
	switch {
	case errors.Is(riseErr, solar.ErrNoEvent) || errors.Is(setErr, solar.ErrNoEvent):
		resp.Polar = true
	case riseErr != nil:
		h.fail(w, req, riseErr)
		return
	case setErr != nil:
		h.fail(w, req, setErr)
		return
	default:
		resp.Sunrise, resp.Sunset = rise, set
		resp.SunriseClock, resp.SunsetClock = solar.FormatSunTime(rise), solar.FormatSunTime(set)
		resp.DayLengthHours = (set - rise) * 24
	}
	h.formatter.WriteResponse(w, req, http.StatusOK, resp)
}

func parseLocation(req *http.Request) (astro.Location, error) {
	q := req.URL.Query()
	var loc astro.Location
	fields := []struct {
		name     string
		dst      *float64
		required bool
		limit    float64
	}{
		{"lat", &loc.Latitude, true, 90},
		{"lon", &loc.Longitude, true, 180},
		{"elevation", &loc.Elevation, false, 10000},
		{"zone", &loc.Zone, false, 14},
	}
	for _, f := range fields {
		s := q.Get(f.name)
		if s == "" {
			if f.required {
				return loc, fmt.Errorf("%s parameter is required", f.name)
			}
			continue
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil || math.IsNaN(v) || math.Abs(v) > f.limit {
			return loc, fmt.Errorf("invalid %s %q", f.name, s)
		}
		*f.dst = v
	}
	return loc, nil
}

// GetChineseNewYear handles GET /chinese/new-year/{year}
func (h *Handlers) GetChineseNewYear(w http.ResponseWriter, req *http.Request) {
	year, err := strconv.Atoi(mux.Vars(req)["year"])
	if err != nil {
		h.badRequest(w, req, "invalid year %q", mux.Vars(req)["year"])
		return
	}
	// The search looks up to a year back, so the first year is excluded.
	if year <= gregorian.MinYear || year > gregorian.MaxYear {
		h.fail(w, req, calerr.InvalidDate("year %d outside %d..%d", year, gregorian.MinYear+1, gregorian.MaxYear))
		return
	}
	rd, err := chinese.NewYear(year)
	if err != nil {
		h.fail(w, req, err)
		return
	}
	d, err := chinese.FromFixed(rd)
	if err != nil {
		h.fail(w, req, err)
		return
	}
	h.formatter.WriteResponse(w, req, http.StatusOK, ChineseNewYearResponse{
		Year:      year,
		Fixed:     rd,
		Gregorian: gregorian.FromFixed(rd).String(),
		Chinese:   d.String(),
		Name:      chinese.YearName(d.Year).String(),
	})
}

// GetEpochs handles GET /epochs
func (h *Handlers) GetEpochs(w http.ResponseWriter, req *http.Request) {
	names := epoch.Names()
	epochs := make([]EpochResponse, 0, len(names))
	for _, name := range names {
		rd, _ := epoch.Lookup(name)
		epochs = append(epochs, EpochResponse{Name: name, RD: rd})
	}
	h.formatter.WriteResponse(w, req, http.StatusOK, epochs)
}

// CreateMoment handles POST /moments
func (h *Handlers) CreateMoment(w http.ResponseWriter, req *http.Request) {
	var body MomentRequest
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		h.badRequest(w, req, "invalid request body: %v", err)
		return
	}
	m, cal, err := h.momentFromRequest(body)
	if err != nil {
		h.fail(w, req, err)
		return
	}
	rec, err := h.controller.Store.Put(req.Context(), m, cal, body.Description)
	if err != nil {
		h.fail(w, req, err)
		return
	}
	h.formatter.WriteResponse(w, req, http.StatusCreated, rec)
}

// momentFromRequest builds the moment a request describes, returning the
// calendar it was entered in.
func (h *Handlers) momentFromRequest(r MomentRequest) (moment.Moment, moment.Calendar, error) {
	cal, err := h.calendarOrDefault(r.Calendar)
	if err != nil {
		return moment.Moment{}, 0, err
	}
	if r.Key != "" {
		m, err := moment.ParseKey(r.Key)
		return m, cal, err
	}

	var declared moment.Precision
	if r.Precision != "" {
		if declared, err = moment.ParsePrecision(r.Precision); err != nil {
			return moment.Moment{}, 0, err
		}
	}
	d, err := moment.ParseDate(cal, r.Date)
	if err != nil {
		return moment.Moment{}, 0, err
	}

	var f moment.Fields
	switch d := d.(type) {
	case moment.GeologicalDate:
		if declared == 0 {
			declared = moment.Year
		}
		power, ok := declared.Power()
		if !ok {
			return moment.Moment{}, 0, calerr.InvalidPrecision("%v is not a geological precision", declared)
		}
		m, err := moment.FromGeological(d.YearsAgo.Shift(int32(-power)), declared)
		return m, cal, err
	case moment.GregorianDate:
		f = moment.YMD(d.Year, d.Month, d.Day)
	case moment.JulianDate:
		f = moment.YMD(d.Year, d.Month, d.Day)
	case moment.HebrewDate:
		f = moment.YMD(d.Year, d.Month, d.Day)
	case moment.ChineseDate:
		f = moment.YMD(d.Year, d.Month, d.Day)
		f.Cycle, f.Leap = d.Cycle, d.Leap
	}

	if f, err = withClock(f, r); err != nil {
		return moment.Moment{}, 0, err
	}

	var m moment.Moment
	switch cal {
	case moment.Gregorian:
		m, err = moment.FromGregorian(f, declared)
	case moment.Julian:
		m, err = moment.FromJulian(f, declared)
	case moment.Hebrew:
		m, err = moment.FromHebrew(f, declared)
	case moment.Chinese:
		m, err = moment.FromChinese(f, declared)
	}
	if err != nil || r.Zone == "" {
		return m, cal, err
	}
	m, err = moment.FromLocal(m, h.controller.Zones, r.Zone)
	return m, cal, err
}

func withClock(f moment.Fields, r MomentRequest) (moment.Fields, error) {
	if r.Hour != nil {
		f.Hour, f.Through = *r.Hour, moment.Hour
	}
	if r.Minute != nil {
		if r.Hour == nil {
			return f, calerr.InvalidPrecision("minute supplied without hour")
		}
		f.Minute, f.Through = *r.Minute, moment.Minute
	}
	if r.Second != "" {
		if r.Minute == nil {
			return f, calerr.InvalidPrecision("second supplied without minute")
		}
		s, err := decimal.NewFromString(r.Second)
		if err != nil {
			return f, calerr.InvalidDate("second %q: %v", r.Second, err)
		}
		f.Second, f.Through = s, moment.Second
	}
	return f, nil
}

// ListMoments handles GET /moments?from=&to=&limit= where from and to are
// lexical keys.
func (h *Handlers) ListMoments(w http.ResponseWriter, req *http.Request) {
	q := req.URL.Query()
	limit := defaultListLimit
	if s := q.Get("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n <= 0 {
			h.badRequest(w, req, "invalid limit %q", s)
			return
		}
		limit = min(n, maxListLimit)
	}
	for _, bound := range []string{q.Get("from"), q.Get("to")} {
		if bound == "" {
			continue
		}
		if _, err := moment.ParseKey(bound); err != nil {
			h.fail(w, req, err)
			return
		}
	}

	records, err := h.controller.Store.Range(req.Context(), q.Get("from"), q.Get("to"), limit)
	if err != nil {
		h.fail(w, req, err)
		return
	}
	if records == nil {
		records = []store.Record{}
	}
	h.formatter.WriteResponse(w, req, http.StatusOK, MomentsResponse{Count: len(records), Moments: records})
}

// GetMoment handles GET /moments/{id}
func (h *Handlers) GetMoment(w http.ResponseWriter, req *http.Request) {
	rec, err := h.controller.Store.Get(req.Context(), mux.Vars(req)["id"])
	if err != nil {
		h.fail(w, req, err)
		return
	}
	h.formatter.WriteResponse(w, req, http.StatusOK, rec)
}

// DeleteMoment handles DELETE /moments/{id}
func (h *Handlers) DeleteMoment(w http.ResponseWriter, req *http.Request) {
	if err := h.controller.Store.Delete(req.Context(), mux.Vars(req)["id"]); err != nil {
		h.fail(w, req, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
