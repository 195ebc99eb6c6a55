package parser

import (
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
)

// builtInDateFormats lists the built-in number format ids that render dates or times.
var builtInDateFormats = map[int]bool{
	14: true, 15: true, 16: true, 17: true, 18: true, 19: true, 20: true, 21: true, 22: true,
	27: true, 28: true, 29: true, 30: true, 31: true, 32: true, 33: true, 34: true, 35: true, 36: true,
	45: true, 46: true, 47: true,
	50: true, 51: true, 52: true, 53: true, 54: true, 55: true, 56: true, 57: true, 58: true,
}

// dateStyles caches, per style id, whether numeric cells using it hold dates.
// It lives for one read and is never shared between reads.
type dateStyles struct {
	f        *excelize.File
	date1904 bool
	byStyle  map[int]bool
}

func newDateStyles(f *excelize.File) *dateStyles {
	d := &dateStyles{f: f, byStyle: make(map[int]bool)}
	if props, err := f.GetWorkbookProps(); err == nil && props.Date1904 != nil {
		d.date1904 = *props.Date1904
	}
	return d
}

func (d *dateStyles) isDate(sheetName, cellName string) bool {
	styleID, err := d.f.GetCellStyle(sheetName, cellName)
	if err != nil || styleID == 0 {
		return false
	}
	if v, ok := d.byStyle[styleID]; ok {
		return v
	}

	isDate := false
	if style, err := d.f.GetStyle(styleID); err == nil && style != nil {
		if style.CustomNumFmt != nil {
			isDate = IsDateFormat(*style.CustomNumFmt)
		} else {
			isDate = builtInDateFormats[style.NumFmt]
		}
	}
	d.byStyle[styleID] = isDate
	return isDate
}

// toTime converts a serial date, falling back to the number when out of range.
func (d *dateStyles) toTime(serial float64, raw string) interface{} {
	t, err := excelize.ExcelDateToTime(serial, d.date1904)
	if err != nil {
		return parseValue(raw)
	}
	return t.Round(time.Millisecond)
}

// IsDateFormat reports whether a custom number format code renders a date or time.
// Quoted literals, escaped characters and bracketed sections ([Red], [$-409])
// are ignored; elapsed-time sections such as [h] count as time.
func IsDateFormat(code string) bool {
	// Only the first section applies to positive numbers.
	if i := strings.IndexByte(code, ';'); i >= 0 {
		code = code[:i]
	}

	var b strings.Builder
	inQuote := false
	for i := 0; i < len(code); i++ {
		c := code[i]
		switch {
		case inQuote:
			if c == '"' {
				inQuote = false
			}
		case c == '"':
			inQuote = true
		case c == '\\' || c == '_' || c == '*':
			i++
		case c == '[':
			end := strings.IndexByte(code[i:], ']')
			if end < 0 {
				i = len(code)
				break
			}
			section := strings.ToLower(code[i+1 : i+end])
			if section == "h" || section == "hh" || section == "m" || section == "mm" || section == "s" || section == "ss" {
				return true
			}
			i += end
		default:
			b.WriteByte(c)
		}
	}

	plain := strings.ToLower(b.String())
	if plain == "general" || plain == "@" {
		return false
	}
	return strings.ContainsAny(plain, "ydhs")
}
