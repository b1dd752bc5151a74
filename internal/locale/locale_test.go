package locale

import "testing"

func TestSystemTimezoneFromEnv(t *testing.T) {
	t.Setenv("TZ", "Europe/Paris")
	if got := (System{}).Timezone(); got != "Europe/Paris" {
		t.Errorf("Timezone() = %q, want Europe/Paris", got)
	}
}

func TestSystemTimezoneIgnoresInvalidEnv(t *testing.T) {
	t.Setenv("TZ", "Not/AZone")
	if got := (System{}).Timezone(); got == "Not/AZone" || got == "" {
		t.Errorf("Timezone() = %q, want a valid fallback", got)
	}
}

func TestSystemLocation(t *testing.T) {
	city, country := System{}.Location()
	if city != DefaultCity || country != DefaultCountry {
		t.Errorf("Location() = %q, %q", city, country)
	}
}

func TestStatic(t *testing.T) {
	var p Provider = Static{City: "Lisbon", Country: "Portugal"}
	if p.Timezone() != "UTC" {
		t.Errorf("empty TZ should default to UTC, got %q", p.Timezone())
	}
	if city, country := p.Location(); city != "Lisbon" || country != "Portugal" {
		t.Errorf("Location() = %q, %q", city, country)
	}
}
