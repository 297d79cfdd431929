package testkit

import (
	"reflect"
	"testing"

	"datalens/domain/table"
)

func TestGenerateRecordsDeterministic(t *testing.T) {
	cfg := DefaultSalesConfig()
	_, first := NewSalesDataGenerator(cfg).GenerateRecords()
	_, second := NewSalesDataGenerator(cfg).GenerateRecords()

	if !reflect.DeepEqual(first, second) {
		t.Fatal("same seed must generate identical records")
	}
	if len(first) != cfg.RowCount {
		t.Errorf("got %d records, expected %d", len(first), cfg.RowCount)
	}
}

func TestGenerateTableSchema(t *testing.T) {
	tbl := NewSalesDataGenerator(DefaultSalesConfig()).GenerateTable()

	schema := tbl.Schema()
	if schema.Kind("date") != table.KindDate {
		t.Errorf("date kind = %s", schema.Kind("date"))
	}
	if schema.Kind("region") != table.KindCategorical {
		t.Errorf("region kind = %s", schema.Kind("region"))
	}
	// Revenue is generated as "$1234.56" strings and must still infer numeric
	if schema.Kind("revenue") != table.KindNumeric {
		t.Errorf("revenue kind = %s", schema.Kind("revenue"))
	}
	if schema.Kind("units") != table.KindNumeric {
		t.Errorf("units kind = %s", schema.Kind("units"))
	}
	if tbl.Len() != DefaultSalesConfig().RowCount {
		t.Errorf("Len = %d, expected %d", tbl.Len(), DefaultSalesConfig().RowCount)
	}
}
