package classify

import "testing"

func TestSheetNameRules(t *testing.T) {
	cases := []struct {
		sheet string
		want  Result
	}{
		{"AllTips", Result{DatasetTips, RoleAllTips}},
		{"ggPayers", Result{DatasetTips, RoleGGPayers}},
		{"SuperAdmin", Result{DatasetTips, RoleSuperAdmin}},
		{"Companies", Result{DatasetCompanies, RoleCompanies}},
		{"Partners Details", Result{DatasetPartners, RolePartners}},
		{"Carseat", Result{DatasetCarseat, ""}},
		{"GG Teammates", Result{DatasetTeammates, ""}},
		{"ggteammates", Result{DatasetTeammates, ""}},
		{"Orders Count", Result{DatasetOrdersCount, ""}},
		{"Clients", Result{DatasetClients, ""}},
		{"Users", Result{DatasetUsers, ""}},
		{"Scratch", Result{DatasetNone, ""}},
	}
	for _, c := range cases {
		got := Sheet(c.sheet, []string{"uuid", "date"})
		if got != c.want {
			t.Fatalf("Sheet(%q) = %+v, want %+v", c.sheet, got, c.want)
		}
	}
}

func TestMarkerColumnsOutrankSheetNames(t *testing.T) {
	// An orders-count sheet carrying an acceptedinterval column is really
	// serve-order history.
	got := Sheet("Orders Count", []string{"userid", "acceptedinterval"})
	if got.Dataset != DatasetServeOrders {
		t.Fatalf("expected serveOrders, got %+v", got)
	}
	got = Sheet("AllTips", []string{"userid", "canceldate"})
	if got.Dataset != DatasetCancellations {
		t.Fatalf("expected cancellations, got %+v", got)
	}
	// acceptedinterval outranks canceldate too.
	got = Sheet("whatever", []string{"canceldate", "acceptedinterval"})
	if got.Dataset != DatasetServeOrders {
		t.Fatalf("expected serveOrders to win, got %+v", got)
	}
}

func TestCSVClassification(t *testing.T) {
	if got := CSV("carseat_march.csv", []string{"orderid"}); got.Dataset != DatasetCarseat {
		t.Fatalf("expected carseat by filename prefix, got %+v", got)
	}
	if got := CSV("export.csv", []string{"statusid", "orderid"}); got.Dataset != DatasetCarseat {
		t.Fatalf("expected carseat by column signature, got %+v", got)
	}
	if got := CSV("export.csv", []string{"acceptedinterval"}); got.Dataset != DatasetServeOrders {
		t.Fatalf("expected serveOrders, got %+v", got)
	}
	if got := CSV("export.csv", []string{"canceldate"}); got.Dataset != DatasetCancellations {
		t.Fatalf("expected cancellations, got %+v", got)
	}
	if got := CSV("export.csv", []string{"userid", "company"}); got.Dataset != DatasetUsers {
		t.Fatalf("expected users by marker column, got %+v", got)
	}
	got := CSV("export.csv", []string{"uuid", "amount"})
	if got.Dataset != DatasetTips || got.Role != RoleCSV {
		t.Fatalf("expected tips/csv default, got %+v", got)
	}
}
