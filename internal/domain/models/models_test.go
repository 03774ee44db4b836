package models

import (
	"encoding/json"
	"errors"
	"reflect"
	"testing"
)

func TestOrderedPreservesKeyOrder(t *testing.T) {
	raw := `{"月线":{"kline":"多头"},"日线":{"macd":"金叉"},"周线":{"kdj":"超买"}}`
	var tech Technicals
	if err := json.Unmarshal([]byte(raw), &tech); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	want := []string{"月线", "日线", "周线"}
	if got := tech.Keys(); !reflect.DeepEqual(got, want) {
		t.Fatalf("keys = %v, want %v", got, want)
	}

	out, err := json.Marshal(tech)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(out) != raw {
		t.Fatalf("round trip changed order:\n got %s\nwant %s", out, raw)
	}
}

func TestOrderedSetReplacesInPlace(t *testing.T) {
	var o Ordered[string]
	o.Set("a", "1")
	o.Set("b", "2")
	o.Set("a", "3")
	if v, _ := o.Get("a"); v != "3" || len(o) != 2 || o[0].Key != "a" {
		t.Fatalf("unexpected ordered state %+v", o)
	}
}

func TestOrderedRejectsNonObject(t *testing.T) {
	var o Ordered[string]
	err := json.Unmarshal([]byte(`["a"]`), &o)
	var dse *DataShapeError
	if !errors.As(err, &dse) {
		t.Fatalf("expected DataShapeError, got %v", err)
	}
}

func TestSplitCategory(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"白酒, 消费", []string{"白酒", "消费"}},
		{"银行，金融,  ,蓝筹", []string{"银行", "金融", "蓝筹"}},
		{"a,a", []string{"a", "a"}},
		{"", []string{}},
		{" , ，", []string{}},
	}
	for _, tt := range tests {
		if got := SplitCategory(tt.in); !reflect.DeepEqual(got, tt.want) {
			t.Fatalf("SplitCategory(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestCategoryRoundTrip(t *testing.T) {
	tags := []string{"科技", "互联网", "港股通", "科技"}
	if got := SplitCategory(JoinCategory(tags)); !reflect.DeepEqual(got, tags) {
		t.Fatalf("round trip = %v, want %v", got, tags)
	}
}

func TestCategoryJSONForms(t *testing.T) {
	var list, text Category
	if err := json.Unmarshal([]byte(`["A","B"]`), &list); err != nil {
		t.Fatalf("list: %v", err)
	}
	if err := json.Unmarshal([]byte(`"A，B"`), &text); err != nil {
		t.Fatalf("text: %v", err)
	}
	if !list.IsList() || text.IsList() {
		t.Fatalf("forms not preserved")
	}
	if !reflect.DeepEqual(list.Tags(), text.Tags()) {
		t.Fatalf("tags differ: %v vs %v", list.Tags(), text.Tags())
	}
	if list.String() != "A, B" {
		t.Fatalf("unexpected join %q", list.String())
	}

	b, _ := json.Marshal(list)
	if string(b) != `["A","B"]` {
		t.Fatalf("list marshalled as %s", b)
	}
}

func TestAssetSummaryOmitsAbsentFields(t *testing.T) {
	b, err := json.Marshal(AssetSummary{Symbol: "X"})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(b) != `{"symbol":"X"}` {
		t.Fatalf("unexpected json %s", b)
	}
}

func TestClampSignal(t *testing.T) {
	if ClampSignal(-5) != SignalMin || ClampSignal(9) != SignalMax || ClampSignal(1.2) != 1.2 {
		t.Fatalf("clamp mismatch")
	}
}

func TestBarTime(t *testing.T) {
	b := Bar{Date: "2024-03-01"}
	if b.Time().IsZero() {
		t.Fatalf("expected date to parse")
	}
	b = Bar{Timestamp: 1709251200}
	if b.Time().Unix() != 1709251200 {
		t.Fatalf("unexpected timestamp %v", b.Time())
	}
}
