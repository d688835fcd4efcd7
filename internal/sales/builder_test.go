package sales

import (
	"testing"
)

func TestBuilderAddLineValidation(t *testing.T) {
	db := newTestDB(t)
	f := seedFixtures(t, db)

	b := NewBuilder(db)

	cases := []struct {
		name      string
		productID uint
		quantity  int
		unitPrice float64
	}{
		{"ürün seçilmemiş", 0, 1, 100},
		{"miktar sıfır", f.productA.ID, 0, 100},
		{"miktar negatif", f.productA.ID, -2, 100},
		{"fiyat negatif", f.productA.ID, 1, -5},
		{"ürün yok", 9999, 1, 100},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := b.AddLine(tc.productID, tc.quantity, tc.unitPrice)
			if err == nil {
				t.Fatal("hata bekleniyordu")
			}
			if !IsValidation(err) {
				t.Fatalf("doğrulama hatası bekleniyordu, gelen: %v", err)
			}
		})
	}

	// Hatalı denemeler kalem eklememiş olmalı
	if got := len(b.Lines()); got != 0 {
		t.Fatalf("kalem sayısı 0 olmalı, gelen: %d", got)
	}
}

func TestBuilderTotalOrderIndependent(t *testing.T) {
	db := newTestDB(t)
	f := seedFixtures(t, db)

	b1 := NewBuilder(db)
	if err := b1.AddLine(f.productA.ID, 2, 1000); err != nil {
		t.Fatal(err)
	}
	if err := b1.AddLine(f.productB.ID, 1, 500); err != nil {
		t.Fatal(err)
	}

	b2 := NewBuilder(db)
	if err := b2.AddLine(f.productB.ID, 1, 500); err != nil {
		t.Fatal(err)
	}
	if err := b2.AddLine(f.productA.ID, 2, 1000); err != nil {
		t.Fatal(err)
	}

	if b1.Total() != 2500 || b2.Total() != 2500 {
		t.Fatalf("toplamlar 2500 olmalı, gelen: %v ve %v", b1.Total(), b2.Total())
	}
}

func TestBuilderSameProductTwice(t *testing.T) {
	db := newTestDB(t)
	f := seedFixtures(t, db)

	b := NewBuilder(db)
	if err := b.AddLine(f.productA.ID, 1, 1000); err != nil {
		t.Fatal(err)
	}
	if err := b.AddLine(f.productA.ID, 3, 900); err != nil {
		t.Fatal(err)
	}

	// Aynı ürün birleştirilmez, iki ayrı kalem kalır
	lines := b.Lines()
	if len(lines) != 2 {
		t.Fatalf("2 kalem bekleniyordu, gelen: %d", len(lines))
	}
	if b.Total() != 1000+3*900 {
		t.Fatalf("toplam yanlış: %v", b.Total())
	}
}

func TestBuilderRemoveLine(t *testing.T) {
	db := newTestDB(t)
	f := seedFixtures(t, db)

	b := NewBuilder(db)
	if err := b.AddLine(f.productA.ID, 2, 1000); err != nil {
		t.Fatal(err)
	}
	if err := b.AddLine(f.productB.ID, 1, 500); err != nil {
		t.Fatal(err)
	}

	// Aralık dışı indeksler sessizce yok sayılır
	b.RemoveLine(-1)
	b.RemoveLine(5)
	if got := len(b.Lines()); got != 2 {
		t.Fatalf("kalem sayısı 2 kalmalıydı, gelen: %d", got)
	}

	b.RemoveLine(0)
	lines := b.Lines()
	if len(lines) != 1 {
		t.Fatalf("kalem sayısı 1 olmalı, gelen: %d", len(lines))
	}
	if lines[0].ProductID != f.productB.ID {
		t.Fatalf("kalan kalem yanlış ürün: %d", lines[0].ProductID)
	}
	if b.Total() != 500 {
		t.Fatalf("toplam 500 olmalı, gelen: %v", b.Total())
	}
}

func TestBuilderLinesReturnsCopy(t *testing.T) {
	db := newTestDB(t)
	f := seedFixtures(t, db)

	b := NewBuilder(db)
	if err := b.AddLine(f.productA.ID, 2, 1000); err != nil {
		t.Fatal(err)
	}

	lines := b.Lines()
	lines[0].Subtotal = 0

	if b.Total() != 2000 {
		t.Fatalf("dışarıdaki değişiklik builder'ı etkilememeli, toplam: %v", b.Total())
	}
}
