package textutil

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFold(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"București", "bucuresti"},
		{"Timișoara", "timisoara"},
		{"Timişoara", "timisoara"},
		{"Târgu Mureș", "targu mures"},
		{"Piatra Neamț", "piatra neamt"},
		{"plain", "plain"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Fold(tt.in), tt.in)
	}
}

func TestContainsFold(t *testing.T) {
	assert.True(t, ContainsFold("Str. Aviatorilor 10, BUCUREȘTI", "bucuresti"))
	assert.True(t, ContainsFold("DJ Alex Beats", "alex"))
	assert.False(t, ContainsFold("Cluj-Napoca", "iasi"))
}

func TestTitleWords(t *testing.T) {
	assert.Equal(t, "Strada Mare 5, Cluj-Napoca", TitleWords("  strada mare 5, cluj-napoca "))
}

func TestCollator_RomanianOrder(t *testing.T) {
	names := []string{"Ștrand", "Sală", "Țară", "Tort", "Ăsta", "Zebra", "Apă"}
	c := NewCollator()
	sort.SliceStable(names, func(i, j int) bool { return c.Compare(names[i], names[j]) < 0 })

	assert.Equal(t, []string{"Apă", "Ăsta", "Sală", "Ștrand", "Tort", "Țară", "Zebra"}, names)
}

func TestWordCount(t *testing.T) {
	assert.Equal(t, 2, WordCount("Ion  Popescu"))
	assert.Equal(t, 0, WordCount("   "))
}

func TestStripDiacritics_KeepsCase(t *testing.T) {
	assert.Equal(t, "Timisoara Sfarsit", StripDiacritics("Timișoara Sfârșit"))
	assert.Equal(t, "Brasov", StripDiacritics("Braşov"))
}
