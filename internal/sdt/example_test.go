package sdt_test

import (
	"fmt"

	"github.com/JakeFAU/sdtnames/internal/sdt"
)

func ExampleAnalyze() {
	report := sdt.Analyze("INFO: SDT: pnr: 801 service_name: КИНОТВ\nSDT    service:Shopping Live\n")
	for _, svc := range report.Services {
		if svc.HasPNR() {
			fmt.Println(*svc.PNR, svc.Name)
			continue
		}
		fmt.Println("-", svc.Name)
	}
	fmt.Println("fallback:", report.Fallback)
	// Output:
	// 801 КИНОТВ
	// - Shopping Live
	// fallback: Shopping Live
}

func ExampleExtractPNR() {
	pnr, ok := sdt.ExtractPNR("udp://239.0.0.1:1234#pnr=1106&cam=ntv")
	fmt.Println(pnr, ok)
	_, ok = sdt.ExtractPNR("http://example.com/stream.m3u8")
	fmt.Println(ok)
	// Output:
	// 1106 true
	// false
}

func ExampleReport_NameFor() {
	report := sdt.Analyze("SDT: pnr: 801 service_name: КИНОТВ\nSDT: pnr: 802 service_name: Комедия\n")
	pnr, ok := sdt.ExtractPNR("udp://239.0.0.1:1234#pnr=802")
	name, found := report.NameFor(pnr, ok)
	fmt.Println(name, found)
	// Output: Комедия true
}
