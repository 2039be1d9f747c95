// Package validation checks user forms and reports failures as
// domain.FieldErrors carrying the Romanian messages from the i18n catalogue.
package validation

import (
	"errors"
	"reflect"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"

	"eventoria/internal/domain"
	"eventoria/internal/pkg/i18n"
	"eventoria/internal/pkg/textutil"
)

const (
	dateLayout = "2006-01-02"
	timeLayout = "15:04"

	DefaultStartTime = "10:00"
	DefaultEndTime   = "18:00"
)

var (
	phonePattern    = regexp.MustCompile(`^(\+4|0)[0-9]{9}$`)
	namePattern     = regexp.MustCompile(`^[a-zA-ZăâîșțĂÂÎȘȚşţ\s\-]+$`)
	locationCharset = regexp.MustCompile(`^[a-zA-ZăâîșțĂÂÎȘȚşţ0-9\s,.\-]+$`)
	hasAlnum        = regexp.MustCompile(`[a-zA-ZăâîșțĂÂÎȘȚşţ0-9]`)
)

type Validator struct {
	validate *validator.Validate
	loc      *time.Location
	now      func() time.Time
}

func New(loc *time.Location) *Validator {
	if loc == nil {
		loc = time.UTC
	}

	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return fld.Name
		}
		return name
	})
	_ = v.RegisterValidation("ro_phone", func(fl validator.FieldLevel) bool {
		return IsRomanianPhone(fl.Field().String())
	})
	_ = v.RegisterValidation("fullname", func(fl validator.FieldLevel) bool {
		name := strings.TrimSpace(fl.Field().String())
		return namePattern.MatchString(name) && textutil.WordCount(name) >= 2
	})

	return &Validator{validate: v, loc: loc, now: time.Now}
}

// WithClock returns a copy that reads the current time from now.
func (v *Validator) WithClock(now func() time.Time) *Validator {
	cp := *v
	cp.now = now
	return &cp
}

func (v *Validator) Location() *time.Location {
	return v.loc
}

// Today is local midnight in the configured time zone.
func (v *Validator) Today() time.Time {
	n := v.now().In(v.loc)
	return time.Date(n.Year(), n.Month(), n.Day(), 0, 0, 0, 0, v.loc)
}

// Struct runs the tag rules of s and maps each failure to
// validation.<form>.<field>.<tag>, falling back to validation.default.<tag>.
func (v *Validator) Struct(form string, s any) domain.FieldErrors {
	var errs domain.FieldErrors

	err := v.validate.Struct(s)
	if err == nil {
		return errs
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		errs.Add("_", err.Error())
		return errs
	}

	for _, fe := range verrs {
		field := fieldPath(fe.Namespace())
		errs.Add(field, message(form, field, fe.Tag()))
	}
	return errs
}

func fieldPath(namespace string) string {
	if i := strings.Index(namespace, "."); i >= 0 {
		return namespace[i+1:]
	}
	return namespace
}

func message(form, field, tag string) string {
	if msg, ok := i18n.Lookup(i18n.DefaultLocale, "validation."+form+"."+field+"."+tag); ok {
		return msg
	}
	if msg, ok := i18n.Lookup(i18n.DefaultLocale, "validation.default."+tag); ok {
		return msg
	}
	return tag
}

func msg(form, field, rule string) string {
	return i18n.T("validation." + form + "." + field + "." + rule)
}

// CleanPhone drops all whitespace from a phone number.
func CleanPhone(phone string) string {
	return strings.Join(strings.Fields(phone), "")
}

func IsRomanianPhone(phone string) bool {
	return phonePattern.MatchString(CleanPhone(phone))
}

func (v *Validator) Register(in *domain.RegisterInput) error {
	in.FullName = strings.TrimSpace(in.FullName)
	in.Email = strings.TrimSpace(strings.ToLower(in.Email))
	return v.Struct("register", in).OrNil()
}

func (v *Validator) Login(in *domain.LoginInput) error {
	in.Email = strings.TrimSpace(strings.ToLower(in.Email))
	return v.Struct("login", in).OrNil()
}

func (v *Validator) ResetPassword(in *domain.ResetPasswordInput) error {
	return v.Struct("reset", in).OrNil()
}

// ServiceForm validates a vendor submission and returns the parsed
// availability date.
func (v *Validator) ServiceForm(f *domain.ServiceForm) (time.Time, error) {
	f.Name = strings.TrimSpace(f.Name)
	f.Description = strings.TrimSpace(f.Description)
	f.Phone = CleanPhone(f.Phone)
	f.Email = strings.TrimSpace(f.Email)

	errs := v.Struct("service", f)

	var date time.Time
	if f.Date != "" {
		parsed, err := time.ParseInLocation(dateLayout, f.Date, v.loc)
		switch {
		case err != nil:
			errs.Add("date", msg("service", "date", "invalid"))
		case parsed.Before(v.Today()):
			errs.Add("date", msg("service", "date", "past"))
		default:
			date = parsed
		}
	}

	return date, errs.OrNil()
}

// ListingUpdate validates a vendor edit and returns the parsed date when one was sent.
func (v *Validator) ListingUpdate(in *domain.UpdateListingInput) (*time.Time, error) {
	errs := v.Struct("listing", in)

	var date *time.Time
	if in.Date != nil && !errs.Has("date") {
		parsed, err := time.ParseInLocation(dateLayout, *in.Date, v.loc)
		if err != nil {
			errs.Add("date", msg("listing", "date", "datetime"))
		} else {
			date = &parsed
		}
	}
	return date, errs.OrNil()
}

// BookingWindow is a validated, normalised contact form.
type BookingWindow struct {
	Phone    string
	Location string
	StartAt  time.Time
	EndAt    time.Time
	Message  string
}

// ContactForm applies the booking form rules in form order. Nothing about
// the form is persisted when an error is returned.
func (v *Validator) ContactForm(f domain.ContactForm) (*BookingWindow, error) {
	var errs domain.FieldErrors
	const form = "booking"

	phone := CleanPhone(f.Phone)
	switch {
	case phone == "":
		errs.Add("phone", msg(form, "phone", "required"))
	case !phonePattern.MatchString(phone):
		errs.Add("phone", msg(form, "phone", "ro_phone"))
	}

	location := strings.TrimSpace(f.Location)
	if rule := locationRule(location); rule != "" {
		errs.Add("location", msg(form, "location", rule))
	}

	startTimeStr := strings.TrimSpace(f.StartTime)
	if startTimeStr == "" {
		startTimeStr = DefaultStartTime
	}
	endTimeStr := strings.TrimSpace(f.EndTime)
	if endTimeStr == "" {
		endTimeStr = DefaultEndTime
	}

	var startDate, endDate time.Time
	var startOK bool

	if f.StartDate == "" {
		errs.Add("start_date", msg(form, "start_date", "required"))
	} else if d, err := time.ParseInLocation(dateLayout, f.StartDate, v.loc); err != nil {
		errs.Add("start_date", msg(form, "start_date", "invalid"))
	} else if d.Before(v.Today()) {
		errs.Add("start_date", msg(form, "start_date", "past"))
	} else {
		startDate, startOK = d, true
	}

	startClock, err := time.Parse(timeLayout, startTimeStr)
	if err != nil {
		errs.Add("start_time", msg(form, "start_time", "invalid"))
	}

	if f.EndDate == "" {
		errs.Add("end_date", msg(form, "end_date", "required"))
	} else if d, err := time.ParseInLocation(dateLayout, f.EndDate, v.loc); err != nil {
		errs.Add("end_date", msg(form, "end_date", "invalid"))
	} else if startOK && d.Before(startDate) {
		errs.Add("end_date", msg(form, "end_date", "before_start"))
	} else {
		endDate = d
	}

	endClock, err := time.Parse(timeLayout, endTimeStr)
	if err != nil {
		errs.Add("end_time", msg(form, "end_time", "invalid"))
	} else if f.StartDate == f.EndDate && !errs.Has("start_time") && !endClock.After(startClock) {
		errs.Add("end_time", msg(form, "end_time", "before_start"))
	}

	text := strings.TrimSpace(f.Message)
	switch n := utf8.RuneCountInString(text); {
	case n == 0:
		errs.Add("message", msg(form, "message", "required"))
	case n < 10:
		errs.Add("message", msg(form, "message", "min"))
	case n > 1000:
		errs.Add("message", msg(form, "message", "max"))
	}

	if len(errs) > 0 {
		return nil, errs
	}

	return &BookingWindow{
		Phone:    phone,
		Location: textutil.TitleWords(location),
		StartAt:  withClock(startDate, startClock, v.loc),
		EndAt:    withClock(endDate, endClock, v.loc),
		Message:  text,
	}, nil
}

func withClock(day, clock time.Time, loc *time.Location) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), clock.Hour(), clock.Minute(), 0, 0, loc)
}

func locationRule(location string) string {
	n := utf8.RuneCountInString(location)
	switch {
	case n == 0:
		return "required"
	case n < 3:
		return "min"
	case n > 200:
		return "max"
	case !locationCharset.MatchString(location):
		return "charset"
	case !HasRomanianCity(location):
		return "city"
	case !hasAlnum.MatchString(location):
		return "alnum"
	}
	return ""
}

// ThreadMessage validates a message appended to a booking conversation.
func (v *Validator) ThreadMessage(text string) (string, error) {
	text = strings.TrimSpace(text)
	var errs domain.FieldErrors
	switch {
	case text == "":
		errs.Add("message", msg("thread", "message", "required"))
	case utf8.RuneCountInString(text) > 1000:
		errs.Add("message", msg("thread", "message", "max"))
	}
	return text, errs.OrNil()
}
