package extract

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/osintbo/rastro/internal/model"
)

// TestExtractEmails tests the gmail-only email pattern.
func TestExtractEmails(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "single address",
			text: "Contacto: cesar.vera@gmail.com para consultas",
			want: []string{"cesar.vera@gmail.com"},
		},
		{
			name: "other providers ignored",
			text: "oficina@hotmail.com prensa@eldeber.com.bo ana_p+osint@gmail.com",
			want: []string{"ana_p+osint@gmail.com"},
		},
		{
			name: "duplicates collapsed keeping order",
			text: "a@gmail.com b@gmail.com a@gmail.com",
			want: []string{"a@gmail.com", "b@gmail.com"},
		},
		{
			name: "no matches",
			text: "sin correos aquí",
			want: nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := Extract(tt.text).Emails
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("unexpected emails (-want +got):\n%s", diff)
			}
		})
	}
}

// TestExtractPhones tests both Bolivian phone patterns.
func TestExtractPhones(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "international format",
			text: "Llamar al +59171234567",
			want: []string{"+59171234567"},
		},
		{
			name: "international with separator",
			text: "Cel: +591 71234567 o +591-65432100",
			want: []string{"+591 71234567", "+591-65432100", "71234567", "65432100"},
		},
		{
			name: "bare eight digits",
			text: "teléfono 71234567 disponible",
			want: []string{"71234567"},
		},
		{
			name: "digits inside longer runs ignored",
			text: "CI 1234567890 fecha 20240115 evento",
			want: []string{"20240115"},
		},
		{
			name: "seven digits ignored",
			text: "anexo 1234567",
			want: nil,
		},
		{
			name: "no phones",
			text: "sin teléfonos",
			want: nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := Extract(tt.text).Phones
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("unexpected phones (-want +got):\n%s", diff)
			}
		})
	}
}

// TestKeepEmail tests the first-name binding filter.
func TestKeepEmail(t *testing.T) {
	t.Parallel()

	subject := model.Subject{FullName: "Cesar Mateo Vera Andrade"}

	tests := []struct {
		name  string
		email string
		want  bool
	}{
		{name: "first name in local part", email: "cesar.vera@gmail.com", want: true},
		{name: "case-insensitive", email: "CESAR2024@gmail.com", want: true},
		{name: "no name token", email: "x@gmail.com", want: false},
		{name: "other token only", email: "vera.andrade@gmail.com", want: false},
		{name: "first name only in domain", email: "x@cesar.com", want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := KeepEmail(subject, tt.email); got != tt.want {
				t.Errorf("KeepEmail(%q) = %v, want %v", tt.email, got, tt.want)
			}
		})
	}

	t.Run("blank subject name", func(t *testing.T) {
		t.Parallel()

		if KeepEmail(model.Subject{}, "cesar@gmail.com") {
			t.Error("expected false for subject without a name")
		}
	})
}

// TestKeepPhone tests the mobile-prefix filter.
func TestKeepPhone(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		phone string
		want  bool
	}{
		{name: "mobile starting with 7", phone: "+59171234567", want: true},
		{name: "mobile starting with 6", phone: "+59165432100", want: true},
		{name: "landline prefix", phone: "+59151234567", want: false},
		{name: "bare mobile", phone: "71234567", want: true},
		{name: "bare landline", phone: "41234567", want: false},
		{name: "separator after country code", phone: "+591 71234567", want: true},
		{name: "dash separator", phone: "+591-65432100", want: true},
		{name: "empty", phone: "", want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := KeepPhone(tt.phone); got != tt.want {
				t.Errorf("KeepPhone(%q) = %v, want %v", tt.phone, got, tt.want)
			}
		})
	}
}
