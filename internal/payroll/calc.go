package payroll

import "math"

// OvertimeMultiplier is company policy, not a per-call knob. Changing it
// is a payroll policy change and belongs here, nowhere else.
const OvertimeMultiplier = 1.5

// Day length used to convert payroll days into productivity hours.
const HoursPerWorkDay = 8

// The calculator functions are total: they compute whatever they are
// given. Range policy (worker.MinDailyRate, 0..31 days) is the caller's
// job, enforced in the service layer before money is derived.

// RegularPay is the base wage for a period, in whole Rupiah.
func RegularPay(dailyRate int64, daysWorked int) int64 {
	return dailyRate * int64(daysWorked)
}

// OvertimePay applies the 1.5x multiplier to hourly overtime work.
// Hours may be fractional; the result is rounded to whole Rupiah.
func OvertimePay(hourlyRate int64, hours float64) int64 {
	return int64(math.Round(float64(hourlyRate) * hours * OvertimeMultiplier))
}

// TotalPay is what the worker takes home before kasbon deductions.
func TotalPay(regular, overtime int64) int64 {
	return regular + overtime
}

// Breakdown is the preview shape the UI renders before a payroll record
// is generated.
type Breakdown struct {
	RegularPay  int64 `json:"regular_pay"`
	OvertimePay int64 `json:"overtime_pay"`
	TotalPay    int64 `json:"total_pay"`
}

func ComputeBreakdown(dailyRate int64, daysWorked int, overtimeTotal int64) Breakdown {
	regular := RegularPay(dailyRate, daysWorked)
	return Breakdown{
		RegularPay:  regular,
		OvertimePay: overtimeTotal,
		TotalPay:    TotalPay(regular, overtimeTotal),
	}
}
