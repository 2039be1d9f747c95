package document

import (
	"bytes"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eventoria/internal/domain"
)

func sampleEvent() *domain.ConfirmedEvent {
	notes := "Avem nevoie de sistem de sunet pentru 150 de invitați."
	return &domain.ConfirmedEvent{
		ID:              uuid.MustParse("6f1c2b8e-9d4a-4b7e-8a1f-2c3d4e5f6a7b"),
		EventName:       "DJ Alex Beats",
		ParticipantName: "Ana Pop",
		VendorName:      "Alex Ionescu",
		ServiceType:     "DJ",
		Location:        "Cluj-Napoca, Strada Memorandumului 28",
		StartAt:         time.Date(2025, 7, 12, 15, 0, 0, 0, time.UTC),
		EndAt:           time.Date(2025, 7, 12, 23, 0, 0, 0, time.UTC),
		Price:           domain.Price{Amount: 1500, Unit: domain.PerEvent},
		Notes:           &notes,
	}
}

func TestConfirmation_ProducesPDF(t *testing.T) {
	data, err := NewRenderer(nil).Confirmation(sampleEvent())

	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF-")))
	assert.Greater(t, len(data), 1000)
}

func TestQRPayloadAndFileName(t *testing.T) {
	e := sampleEvent()
	assert.Equal(t, "eventoria:confirmed-event:6f1c2b8e-9d4a-4b7e-8a1f-2c3d4e5f6a7b", QRPayload(e))
	assert.Equal(t, "confirmare-6f1c2b8e.pdf", FileName(e))
}

func TestFormatPrice(t *testing.T) {
	assert.Equal(t, "1500 RON per eveniment", FormatPrice(domain.Price{Amount: 1500, Unit: domain.PerEvent}))
	assert.Equal(t, "49.50 RON de persoană", FormatPrice(domain.Price{Amount: 49.5, Unit: domain.PerPerson}))
	assert.Equal(t, "0 RON", FormatPrice(domain.Price{}))
}
