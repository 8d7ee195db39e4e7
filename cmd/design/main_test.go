package main

import "testing"

func TestNewRootCommandRequiresRequirementsAndCatalogFlags(t *testing.T) {
	root := newRootCommand()
	root.SetArgs([]string{"run"})
	if err := root.Execute(); err == nil {
		t.Fatalf("expected an error when --requirements and --catalog are missing")
	}
}

func TestSplitCellFilterSplitsOnFirstColon(t *testing.T) {
	manufacturer, model := splitCellFilter("acme:cell-1:v2")
	if manufacturer != "acme" || model != "cell-1:v2" {
		t.Fatalf("expected (\"acme\", \"cell-1:v2\"), got (%q, %q)", manufacturer, model)
	}
}

func TestSplitCellFilterWithNoColonReturnsWholeStringAsManufacturer(t *testing.T) {
	manufacturer, model := splitCellFilter("acme")
	if manufacturer != "acme" || model != "" {
		t.Fatalf("expected (\"acme\", \"\"), got (%q, %q)", manufacturer, model)
	}
}

func TestAuxiliarySubcommandsExist(t *testing.T) {
	root := newRootCommand()
	for _, name := range []string{"catalog", "cad", "simulate-life-cycle"} {
		found := false
		for _, c := range root.Commands() {
			if c.Name() == name {
				found = true
			}
		}
		if !found {
			t.Fatalf("expected a %q subcommand on the root command", name)
		}
	}
}
