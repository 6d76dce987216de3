package main

import (
	"testing"

	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func TestChartCommandKeepsTraceLevel(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "earleo.cmd", "earleo.earley")
	defer teardown()
	//
	gf, err := (&rootOptions{}).grammar()
	if err != nil {
		t.Fatal(err)
	}
	p, err := gf.parser()
	if err != nil {
		t.Fatal(err)
	}
	intp := &Intp{gf: gf, parser: p}
	if quit := intp.Eval("1 + 2"); quit {
		t.Fatalf("Expected input line not to quit the REPL")
	}
	tracing.Select("earleo.cmd").SetTraceLevel(tracing.LevelInfo)
	tracing.Select("earleo.earley").SetTraceLevel(tracing.LevelError)
	intp.Eval(":chart")
	if level := tracing.Select("earleo.earley").GetTraceLevel(); level != tracing.LevelError {
		t.Errorf("Expected parser trace level to be restored to Error, is %v", level)
	}
	if level := tracing.Select("earleo.cmd").GetTraceLevel(); level != tracing.LevelInfo {
		t.Errorf("Expected command trace level to be unchanged, is %v", level)
	}
	if quit := intp.Eval(":q"); !quit {
		t.Errorf("Expected :q to quit the REPL")
	}
}
