package tokens

import "testing"

func TestNewBudget(t *testing.T) {
	b := NewBudget(100)

	if b.Total != 100 {
		t.Errorf("expected Total 100, got %d", b.Total)
	}
	if b.Used() != 0 {
		t.Errorf("expected Used 0, got %d", b.Used())
	}
	if !b.Bounded() {
		t.Error("expected budget with a ceiling to be bounded")
	}
}

func TestBudget_Unbounded(t *testing.T) {
	b := NewBudget(0)
	b.Add(1_000_000)

	if b.Bounded() {
		t.Error("zero total should be unbounded")
	}
	if b.Exceeded() {
		t.Error("unbounded budget should never be exceeded")
	}
	if b.Used() != 1_000_000 {
		t.Errorf("Used() = %d, expected 1000000", b.Used())
	}
}

func TestBudget_Exceeded(t *testing.T) {
	tests := []struct {
		name     string
		total    int
		adds     []int
		used     int
		exceeded bool
	}{
		{name: "nothing spent", total: 50, adds: nil, used: 0, exceeded: false},
		{name: "under", total: 50, adds: []int{20, 20}, used: 40, exceeded: false},
		{name: "exactly at ceiling", total: 50, adds: []int{25, 25}, used: 50, exceeded: false},
		{name: "one over", total: 50, adds: []int{25, 26}, used: 51, exceeded: true},
		{name: "five files of twenty", total: 50, adds: []int{20, 20, 20, 20, 20}, used: 100, exceeded: true},
		{name: "negative ignored", total: 50, adds: []int{-10, 10}, used: 10, exceeded: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBudget(tt.total)
			for _, n := range tt.adds {
				b.Add(n)
			}
			if b.Used() != tt.used {
				t.Errorf("Used() = %d, expected %d", b.Used(), tt.used)
			}
			if b.Exceeded() != tt.exceeded {
				t.Errorf("Exceeded() = %v, expected %v", b.Exceeded(), tt.exceeded)
			}
		})
	}
}

func BenchmarkBudget_Add(b *testing.B) {
	budget := NewBudget(1 << 30)

	b.ResetTimer()
	for range b.N {
		budget.Add(7)
	}
}
