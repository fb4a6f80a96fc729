package conviction

// codeDescriptions maps Form 4 transaction codes to human labels for
// reporting. Codes outside this table render as "Unknown".
var codeDescriptions = map[string]string{
	"P": "Purchase",
	"S": "Sale",
	"A": "Grant/Award",
	"D": "Disposition",
	"F": "Tax Payment",
	"I": "Discretionary Transaction",
	"L": "Small Acquisition",
	"W": "Will/Inheritance",
	"M": "Exercise/Conversion",
	"C": "Conversion",
}

// DescribeCode returns the human label for a transaction code.
func DescribeCode(code string) string {
	if desc, ok := codeDescriptions[code]; ok {
		return desc
	}
	return "Unknown"
}
