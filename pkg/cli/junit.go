package cli

import (
	"encoding/xml"
	"fmt"
	"time"
)

// JUnitSuites is the root element of a JUnit XML report.
type JUnitSuites struct {
	XMLName  xml.Name     `xml:"testsuites"`
	Tests    int          `xml:"tests,attr"`
	Failures int          `xml:"failures,attr"`
	Time     string       `xml:"time,attr"`
	Suites   []JUnitSuite `xml:"testsuite"`
}

// JUnitSuite groups the test cases of one formula.
type JUnitSuite struct {
	Name     string      `xml:"name,attr"`
	Tests    int         `xml:"tests,attr"`
	Failures int         `xml:"failures,attr"`
	Cases    []JUnitCase `xml:"testcase"`
}

// JUnitCase is a single test case.
type JUnitCase struct {
	Name      string        `xml:"name,attr"`
	ClassName string        `xml:"classname,attr"`
	Failure   *JUnitFailure `xml:"failure,omitempty"`
}

// JUnitFailure describes why a test case failed.
type JUnitFailure struct {
	Message string `xml:"message,attr"`
	Text    string `xml:",chardata"`
}

// AddCase appends a case to the named suite, creating the suite on first
// use. An empty failure message marks the case as passed.
func (s *JUnitSuites) AddCase(suite, name, failure string) {
	idx := -1
	for i := range s.Suites {
		if s.Suites[i].Name == suite {
			idx = i
			break
		}
	}
	if idx < 0 {
		s.Suites = append(s.Suites, JUnitSuite{Name: suite})
		idx = len(s.Suites) - 1
	}

	c := JUnitCase{Name: name, ClassName: suite}
	if failure != "" {
		c.Failure = &JUnitFailure{Message: failure, Text: failure}
		s.Suites[idx].Failures++
		s.Failures++
	}
	s.Suites[idx].Cases = append(s.Suites[idx].Cases, c)
	s.Suites[idx].Tests++
	s.Tests++
}

// SetDuration records the total run time in seconds.
func (s *JUnitSuites) SetDuration(d time.Duration) {
	s.Time = fmt.Sprintf("%.3f", d.Seconds())
}
