// Package receipt renders the proof-of-submission PDF handed to applicants.
package receipt

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/noah-isme/course-portal-api/pkg/datefmt"
)

const (
	Title    = "Success Online Course"
	Subtitle = "Your Gateway to Success in Online Learning"

	fileSuffix = "_CourseApplication.pdf"
)

var headerColor = [3]int{63, 81, 181}

// Instructions are printed verbatim beneath the details block.
var Instructions = []string{
	"1. This is the computer-generated copy of your application.",
	"2. If fees is not paid before the last date, your application will be rejected.",
	"3. Please hold on; we will contact you within 2 days for fee payment and other details.",
	"4. After fee payment, check the application status for further information.",
	"5. For any further assistance, reach out to us from the help section on the home page.",
}

// Details is the application and course snapshot printed on a receipt.
type Details struct {
	ApplicationID   string
	CourseName      string
	CourseFees      string
	StartDate       string
	StartTime       string
	EndTime         string
	LastDateToApply string
	Name            string
	Email           string
	Phone           string
	DOB             string
	Address         string
	City            string
	State           string
	Pincode         string
	ApplicationDate time.Time
}

// Row is one label/value line of the details block.
type Row struct {
	Label string
	Value string
}

// FileName is the download name offered for an applicant's receipt.
func FileName(applicantName string) string {
	return applicantName + fileSuffix
}

// Rows formats the details block. Malformed dates or times fail the whole receipt.
func Rows(d Details) ([]Row, error) {
	startDate, err := datefmt.FormatDate(d.StartDate)
	if err != nil {
		return nil, fmt.Errorf("start date: %w", err)
	}
	start, err := datefmt.FormatTime(d.StartTime)
	if err != nil {
		return nil, fmt.Errorf("start time: %w", err)
	}
	end, err := datefmt.FormatTime(d.EndTime)
	if err != nil {
		return nil, fmt.Errorf("end time: %w", err)
	}
	lastDate, err := datefmt.FormatDate(d.LastDateToApply)
	if err != nil {
		return nil, fmt.Errorf("last date to apply: %w", err)
	}
	dob, err := datefmt.FormatDate(d.DOB)
	if err != nil {
		return nil, fmt.Errorf("date of birth: %w", err)
	}
	email := d.Email
	if email == "" {
		email = "N/A"
	}

	return []Row{
		{"Application ID:", d.ApplicationID},
		{"Course Name:", d.CourseName},
		{"Course Fee:", d.CourseFees + "/- INR"},
		{"Start Date:", startDate},
		{"Timing:", start + " - " + end},
		{"Last Date to Apply:", lastDate},
		{"Name:", d.Name},
		{"Email:", email},
		{"Phone:", d.Phone},
		{"Date of Birth:", dob},
		{"Address:", d.Address},
		{"City:", d.City},
		{"State:", d.State},
		{"Pincode:", d.Pincode},
		{"Application Date:", datefmt.Format(d.ApplicationDate)},
	}, nil
}

// Render builds the receipt PDF.
func Render(d Details) ([]byte, error) {
	rows, err := Rows(d)
	if err != nil {
		return nil, err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pageWidth, _ := pdf.GetPageSize()

	pdf.SetFillColor(headerColor[0], headerColor[1], headerColor[2])
	pdf.Rect(0, 0, pageWidth, 40, "F")
	pdf.SetFont("Helvetica", "B", 24)
	pdf.SetTextColor(255, 255, 255)
	pdf.Text(55, 25, Title)

	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetTextColor(0, 0, 0)
	pdf.Text((pageWidth-pdf.GetStringWidth(Subtitle))/2, 50, Subtitle)

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Text(15, 70, "Application Details")

	y := 80.0
	for _, row := range rows {
		pdf.SetFont("Helvetica", "B", 12)
		pdf.SetTextColor(0, 0, 255)
		pdf.Text(15, y, row.Label)
		pdf.SetFont("Helvetica", "", 12)
		pdf.SetTextColor(0, 0, 0)
		pdf.Text(90, y, tr(row.Value))
		y += 10
	}

	y += 10
	pdf.SetFont("Helvetica", "B", 14)
	pdf.Text(15, y, "Instructions:")
	y += 10
	pdf.SetFont("Helvetica", "", 12)
	for _, line := range Instructions {
		pdf.Text(15, y, line)
		y += 10
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render receipt: %w", err)
	}
	return buf.Bytes(), nil
}
