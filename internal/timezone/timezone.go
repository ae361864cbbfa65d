package timezone

import (
	"fmt"
	"time"
	_ "time/tzdata"
)

const DefaultTimezone = "America/Sao_Paulo"

// FormInputLayout is the layout produced by datetime-local inputs.
const FormInputLayout = "2006-01-02T15:04"

var (
	weekdaysPT = [...]string{"dom.", "seg.", "ter.", "qua.", "qui.", "sex.", "sáb."}
	monthsPT   = [...]string{"jan.", "fev.", "mar.", "abr.", "mai.", "jun.", "jul.", "ago.", "set.", "out.", "nov.", "dez."}
)

func IsValid(tz string) bool {
	if tz == "" {
		return false
	}
	_, err := time.LoadLocation(tz)
	return err == nil
}

func Location(tz string) *time.Location {
	if IsValid(tz) {
		if loc, err := time.LoadLocation(tz); err == nil {
			return loc
		}
	}

	loc, err := time.LoadLocation(DefaultTimezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// Default is the location used for naive instants and display.
func Default() *time.Location {
	return Location(DefaultTimezone)
}

func Now() time.Time {
	return time.Now().In(Default())
}

// FormatCardDate renders "seg., 01 de jan." the way pt-BR short dates read.
func FormatCardDate(t time.Time) string {
	local := t.In(Default())
	return fmt.Sprintf("%s, %02d de %s",
		weekdaysPT[local.Weekday()],
		local.Day(),
		monthsPT[local.Month()-1],
	)
}

// FormatDate renders dd/mm/yyyy.
func FormatDate(t time.Time) string {
	return t.In(Default()).Format("02/01/2006")
}

// FormatTime renders HH:MM.
func FormatTime(t time.Time) string {
	return t.In(Default()).Format("15:04")
}

// FormatDateTime renders "dd/mm/yyyy, HH:MM:SS".
func FormatDateTime(t time.Time) string {
	return t.In(Default()).Format("02/01/2006, 15:04:05")
}

// FormInput renders an instant as a datetime-local value.
func FormInput(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.In(Default()).Format(FormInputLayout)
}
