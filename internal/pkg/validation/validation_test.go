package validation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eventoria/internal/domain"
)

var bucharest = time.FixedZone("EEST", 3*60*60)

func newTestValidator() *Validator {
	return New(bucharest).WithClock(func() time.Time {
		return time.Date(2025, 6, 10, 12, 0, 0, 0, bucharest)
	})
}

func validContactForm() domain.ContactForm {
	return domain.ContactForm{
		Phone:     "0721 234 567",
		Location:  "strada florilor 3, cluj-napoca",
		StartDate: "2025-06-20",
		EndDate:   "2025-06-20",
		Message:   "Bună ziua, aș dori o ofertă pentru nuntă.",
	}
}

func requireFieldErrors(t *testing.T, err error) domain.FieldErrors {
	t.Helper()
	require.Error(t, err)
	fe, ok := err.(domain.FieldErrors)
	require.True(t, ok, "expected domain.FieldErrors, got %T", err)
	return fe
}

func TestContactForm_Valid(t *testing.T) {
	v := newTestValidator()

	w, err := v.ContactForm(validContactForm())

	require.NoError(t, err)
	assert.Equal(t, "0721234567", w.Phone)
	assert.Equal(t, "Strada Florilor 3, Cluj-Napoca", w.Location)
	assert.Equal(t, time.Date(2025, 6, 20, 10, 0, 0, 0, bucharest), w.StartAt)
	assert.Equal(t, time.Date(2025, 6, 20, 18, 0, 0, 0, bucharest), w.EndAt)
}

func TestContactForm_StartDateInPast(t *testing.T) {
	v := newTestValidator()
	form := validContactForm()
	form.StartDate = "2025-06-09"
	form.EndDate = "2025-06-21"

	w, err := v.ContactForm(form)

	assert.Nil(t, w)
	fe := requireFieldErrors(t, err)
	assert.Equal(t, "Data de început nu poate fi în trecut", fe.Message("start_date"))
}

func TestContactForm_TodayIsAllowed(t *testing.T) {
	v := newTestValidator()
	form := validContactForm()
	form.StartDate = "2025-06-10"
	form.EndDate = "2025-06-10"

	_, err := v.ContactForm(form)

	assert.NoError(t, err)
}

func TestContactForm_DateWindow(t *testing.T) {
	v := newTestValidator()

	t.Run("end date before start date", func(t *testing.T) {
		form := validContactForm()
		form.EndDate = "2025-06-19"

		_, err := v.ContactForm(form)

		fe := requireFieldErrors(t, err)
		assert.Equal(t, "Data de sfârșit nu poate fi înainte de data de început", fe.Message("end_date"))
	})

	t.Run("same day end time not after start time", func(t *testing.T) {
		form := validContactForm()
		form.StartTime = "18:00"
		form.EndTime = "18:00"

		_, err := v.ContactForm(form)

		fe := requireFieldErrors(t, err)
		assert.Equal(t, "Ora de sfârșit trebuie să fie după ora de început", fe.Message("end_time"))
	})

	t.Run("different days ignore clock order", func(t *testing.T) {
		form := validContactForm()
		form.EndDate = "2025-06-21"
		form.StartTime = "20:00"
		form.EndTime = "02:00"

		_, err := v.ContactForm(form)

		assert.NoError(t, err)
	})
}

func TestContactForm_Location(t *testing.T) {
	v := newTestValidator()

	tests := []struct {
		name     string
		location string
		want     string
	}{
		{"empty", "  ", "Locația evenimentului este obligatorie"},
		{"too short", "ab", "Locația trebuie să conțină cel puțin 3 caractere"},
		{"bad characters", "Cluj-Napoca #5", "Locația poate conține doar litere, cifre, spații și semne de punctuație"},
		{"no known city", "Strada Lunga 4", "Locația trebuie să conțină un oraș din România (ex: București, Cluj-Napoca, Timișoara)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form := validContactForm()
			form.Location = tt.location

			_, err := v.ContactForm(form)

			fe := requireFieldErrors(t, err)
			assert.Equal(t, tt.want, fe.Message("location"))
		})
	}

	t.Run("city with diacritics", func(t *testing.T) {
		form := validContactForm()
		form.Location = "Bulevardul Unirii 1, București"

		w, err := v.ContactForm(form)

		require.NoError(t, err)
		assert.Equal(t, "Bulevardul Unirii 1, București", w.Location)
	})
}

func TestContactForm_PhoneAndMessage(t *testing.T) {
	v := newTestValidator()
	form := validContactForm()
	form.Phone = "12345"
	form.Message = "Salut"

	_, err := v.ContactForm(form)

	fe := requireFieldErrors(t, err)
	assert.Equal(t, "Numărul de telefon nu este valid (ex: 0721234567 sau +40721234567)", fe.Message("phone"))
	assert.Equal(t, "Mesajul trebuie să conțină cel puțin 10 caractere", fe.Message("message"))
	assert.Equal(t, "phone", fe[0].Field)
}

func validServiceForm() domain.ServiceForm {
	return domain.ServiceForm{
		Name:          "DJ Alex Beats",
		Description:   "Muzică pentru nunți, botezuri și petreceri corporate.",
		CategoryID:    "3",
		Subcategories: []string{"DJ"},
		Price:         domain.Price{Amount: 1500, Unit: domain.PerEvent},
		Locations:     []string{"București"},
		Date:          "2025-07-01",
		ImageURL:      "https://cdn.example.com/events/dj.jpg",
		Phone:         "0721 234 567",
		Email:         "alex@example.com",
		Tags:          []string{"party"},
	}
}

func TestServiceForm(t *testing.T) {
	v := newTestValidator()

	t.Run("valid", func(t *testing.T) {
		form := validServiceForm()

		date, err := v.ServiceForm(&form)

		require.NoError(t, err)
		assert.Equal(t, time.Date(2025, 7, 1, 0, 0, 0, 0, bucharest), date)
		assert.Equal(t, "0721234567", form.Phone)
	})

	t.Run("collects field messages", func(t *testing.T) {
		form := validServiceForm()
		form.Name = "DJ"
		form.Price.Amount = 0
		form.Date = "2025-06-01"
		form.Tags = nil

		_, err := v.ServiceForm(&form)

		fe := requireFieldErrors(t, err)
		assert.Equal(t, "Numele serviciului trebuie să conțină cel puțin 3 caractere", fe.Message("name"))
		assert.Equal(t, "Prețul trebuie să fie mai mare decât 0", fe.Message("price.amount"))
		assert.Equal(t, "Data disponibilității nu poate fi în trecut", fe.Message("date"))
		assert.Equal(t, "Trebuie să selectați cel puțin un tag", fe.Message("tags"))
	})

	t.Run("price above the cap", func(t *testing.T) {
		form := validServiceForm()
		form.Price.Amount = 1_000_001

		_, err := v.ServiceForm(&form)

		fe := requireFieldErrors(t, err)
		assert.Equal(t, "Prețul nu poate depăși 1.000.000 RON", fe.Message("price.amount"))
	})
}

func TestRegister(t *testing.T) {
	v := newTestValidator()

	t.Run("valid", func(t *testing.T) {
		in := domain.RegisterInput{
			FullName: " Ana Popescu ", Email: "Ana@Example.com",
			Password: "secret1", ConfirmPassword: "secret1", Role: domain.RoleParticipant,
		}

		require.NoError(t, v.Register(&in))
		assert.Equal(t, "Ana Popescu", in.FullName)
		assert.Equal(t, "ana@example.com", in.Email)
	})

	t.Run("single word name and mismatched passwords", func(t *testing.T) {
		in := domain.RegisterInput{
			FullName: "Ana", Email: "ana@example.com",
			Password: "secret1", ConfirmPassword: "secret2", Role: domain.RoleVendor,
		}

		fe := requireFieldErrors(t, v.Register(&in))
		assert.Equal(t, "Vă rugăm să introduceți numele și prenumele", fe.Message("full_name"))
		assert.Equal(t, "Parolele nu se potrivesc", fe.Message("confirm_password"))
	})

	t.Run("admin cannot self register", func(t *testing.T) {
		in := domain.RegisterInput{
			FullName: "Ana Pop", Email: "ana@example.com",
			Password: "secret1", ConfirmPassword: "secret1", Role: domain.RoleAdmin,
		}

		fe := requireFieldErrors(t, v.Register(&in))
		assert.True(t, fe.Has("role"))
	})
}

func TestThreadMessage(t *testing.T) {
	v := newTestValidator()

	text, err := v.ThreadMessage("  Mulțumesc!  ")
	require.NoError(t, err)
	assert.Equal(t, "Mulțumesc!", text)

	_, err = v.ThreadMessage("   ")
	fe := requireFieldErrors(t, err)
	assert.Equal(t, "Mesajul este obligatoriu", fe.Message("message"))
}

func TestIsRomanianPhone(t *testing.T) {
	assert.True(t, IsRomanianPhone("0721234567"))
	assert.True(t, IsRomanianPhone("0721 234 567"))
	assert.False(t, IsRomanianPhone("072123456"))
	assert.False(t, IsRomanianPhone("abc"))
}
