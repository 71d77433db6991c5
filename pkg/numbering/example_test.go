package numbering_test

import (
	"fmt"

	"github.com/matzehuels/labelsheet/pkg/numbering"
)

func ExampleGenerate() {
	contents, err := numbering.Generate(numbering.Config{
		Prefix:         "ASN",
		StartingNumber: 9,
		PaddingZeros:   4,
		Count:          3,
		QRTemplate:     "https://docs.example/?asn={label}",
	})
	if err != nil {
		fmt.Println(err)
		return
	}
	for _, c := range contents {
		fmt.Println(c.DisplayText, c.QRPayload)
	}
	// Output:
	// ASN0009 https://docs.example/?asn=ASN0009
	// ASN0010 https://docs.example/?asn=ASN0010
	// ASN0011 https://docs.example/?asn=ASN0011
}

func ExampleZeroPad() {
	fmt.Println(numbering.ZeroPad(42, 4))
	fmt.Println(numbering.ZeroPad(10000, 4))
	// Output:
	// 0042
	// 10000
}
