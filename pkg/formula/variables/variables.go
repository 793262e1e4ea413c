// Package variables defines the payroll variables a formula may reference.
//
// The whitelist is built once and never modified afterwards, so it can be
// shared by any number of concurrent validations. Engines that need extra
// identifiers build a new whitelist with Extend at construction time.
package variables

import "sort"

// Whitelist is an immutable set of recognized variable names.
type Whitelist struct {
	names []string
	set   map[string]struct{}
}

// NewWhitelist creates a whitelist from the given names.
// Duplicates and empty names are dropped; the first-seen order is kept.
func NewWhitelist(names ...string) *Whitelist {
	w := &Whitelist{
		names: make([]string, 0, len(names)),
		set:   make(map[string]struct{}, len(names)),
	}
	for _, name := range names {
		if name == "" {
			continue
		}
		if _, ok := w.set[name]; ok {
			continue
		}
		w.set[name] = struct{}{}
		w.names = append(w.names, name)
	}
	return w
}

// Contains reports whether name is whitelisted.
func (w *Whitelist) Contains(name string) bool {
	if w == nil {
		return false
	}
	_, ok := w.set[name]
	return ok
}

// Names returns a copy of the whitelisted names in definition order.
func (w *Whitelist) Names() []string {
	if w == nil {
		return nil
	}
	out := make([]string, len(w.names))
	copy(out, w.names)
	return out
}

// Sorted returns the whitelisted names sorted alphabetically.
func (w *Whitelist) Sorted() []string {
	out := w.Names()
	sort.Strings(out)
	return out
}

// Len returns the number of whitelisted names.
func (w *Whitelist) Len() int {
	if w == nil {
		return 0
	}
	return len(w.names)
}

// Extend returns a new whitelist containing w's names followed by extra.
// w itself is not modified.
func (w *Whitelist) Extend(extra ...string) *Whitelist {
	return NewWhitelist(append(w.Names(), extra...)...)
}

// Payroll variable names.
const (
	GrossPay         = "gross_pay"
	NetPay           = "net_pay"
	BaseSalary       = "base_salary"
	HourlyRate       = "hourly_rate"
	HoursWorked      = "hours_worked"
	RegularHours     = "regular_hours"
	OvertimeHours    = "overtime_hours"
	OvertimeRate     = "overtime_rate"
	DaysWorked       = "days_worked"
	WorkingDays      = "working_days"
	YearsOfService   = "years_of_service"
	Age              = "age"
	Dependents       = "dependents"
	BonusAmount      = "bonus_amount"
	CommissionRate   = "commission_rate"
	SalesAmount      = "sales_amount"
	TaxRate          = "tax_rate"
	TaxableIncome    = "taxable_income"
	Deductions       = "deductions"
	Allowances       = "allowances"
	PayPeriods       = "pay_periods"
	PerformanceScore = "performance_score"
)

// defaultSamples holds a plausible monthly value for every default variable.
// The order of this slice is the order of the default whitelist.
var defaultSamples = []struct {
	name  string
	value float64
}{
	{GrossPay, 5000},
	{NetPay, 3800},
	{BaseSalary, 60000},
	{HourlyRate, 31.25},
	{HoursWorked, 160},
	{RegularHours, 160},
	{OvertimeHours, 10},
	{OvertimeRate, 37.5},
	{DaysWorked, 21},
	{WorkingDays, 22},
	{YearsOfService, 5},
	{Age, 35},
	{Dependents, 2},
	{BonusAmount, 500},
	{CommissionRate, 0.05},
	{SalesAmount, 20000},
	{TaxRate, 0.2},
	{TaxableIncome, 4500},
	{Deductions, 300},
	{Allowances, 200},
	{PayPeriods, 12},
	{PerformanceScore, 3},
}

var defaultWhitelist = func() *Whitelist {
	names := make([]string, len(defaultSamples))
	for i, s := range defaultSamples {
		names[i] = s.name
	}
	return NewWhitelist(names...)
}()

// Default returns the process-wide payroll whitelist.
func Default() *Whitelist {
	return defaultWhitelist
}

// SampleValues returns a fresh copy of the sample bindings of the default
// variables. Callers may modify the returned map.
func SampleValues() map[string]float64 {
	out := make(map[string]float64, len(defaultSamples))
	for _, s := range defaultSamples {
		out[s.name] = s.value
	}
	return out
}
