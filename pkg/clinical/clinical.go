// Package clinical pulls a few well-known lab values out of free report text.
package clinical

import (
	"fmt"
	"regexp"
	"strconv"
)

// Status labels
const (
	StatusNormal = "Normal"
	StatusHigh   = "High"
	StatusLow    = "Low"
)

// Thresholds
const (
	SystolicHighAbove    = 140
	DiastolicHighAbove   = 90
	CholesterolHighAbove = 200
	HemoglobinLowBelow   = 12
)

var (
	bloodPressurePattern = regexp.MustCompile(`(\d{2,3})/(\d{2,3})`)
	cholesterolPattern   = regexp.MustCompile(`(?i)cholesterol.*?(\d+)`)
	hemoglobinPattern    = regexp.MustCompile(`(?i)hemoglobin.*?(\d+)`)
)

// Finding is one measured value with its interpretation
type Finding struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Status string `json:"status"`
}

// Abnormal reports whether the value is outside the normal range
func (f Finding) Abnormal() bool {
	return f.Status != StatusNormal
}

// Display renders the finding as a single line
func (f Finding) Display() string {
	return fmt.Sprintf("%s: %s — %s", f.Name, f.Value, f.Status)
}

// Extract scans text for blood pressure, cholesterol and hemoglobin values.
// Only the first match of each is used; findings come back in that order.
func Extract(text string) []Finding {
	var findings []Finding

	if m := bloodPressurePattern.FindStringSubmatch(text); m != nil {
		systolic, _ := strconv.Atoi(m[1])
		diastolic, _ := strconv.Atoi(m[2])
		status := StatusNormal
		if systolic > SystolicHighAbove || diastolic > DiastolicHighAbove {
			status = StatusHigh
		}
		findings = append(findings, Finding{
			Name:   "Blood Pressure",
			Value:  fmt.Sprintf("%d/%d", systolic, diastolic),
			Status: status,
		})
	}

	if chol, ok := firstNumber(cholesterolPattern, text); ok {
		status := StatusNormal
		if chol > CholesterolHighAbove {
			status = StatusHigh
		}
		findings = append(findings, Finding{
			Name:   "Cholesterol",
			Value:  fmt.Sprintf("%d mg/dL", chol),
			Status: status,
		})
	}

	if hb, ok := firstNumber(hemoglobinPattern, text); ok {
		status := StatusNormal
		if hb < HemoglobinLowBelow {
			status = StatusLow
		}
		findings = append(findings, Finding{
			Name:   "Hemoglobin",
			Value:  fmt.Sprintf("%d g/dL", hb),
			Status: status,
		})
	}

	return findings
}

func firstNumber(re *regexp.Regexp, text string) (int, bool) {
	m := re.FindStringSubmatch(text)
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return n, true
}
