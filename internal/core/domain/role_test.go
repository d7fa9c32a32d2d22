package domain

import "testing"

func TestRoleFromFlags(t *testing.T) {
	cases := []struct {
		name        string
		isStaff     bool
		isSuperuser bool
		want        Role
	}{
		{"neither flag", false, false, RoleRegular},
		{"staff only", true, false, RoleCritic},
		{"superuser only", false, true, RoleAdmin},
		{"superuser precedence over staff", true, true, RoleAdmin},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := RoleFromFlags(tc.isStaff, tc.isSuperuser); got != tc.want {
				t.Fatalf("RoleFromFlags(%v, %v) = %s, want %s", tc.isStaff, tc.isSuperuser, got, tc.want)
			}
		})
	}
}

func TestPolicyMatrix(t *testing.T) {
	cases := []struct {
		role          Role
		manageCatalog bool
		authorReviews bool
		listReviews   bool
		seesAll       bool
	}{
		{RoleAdmin, true, false, true, true},
		{RoleCritic, false, true, true, false},
		{RoleRegular, false, false, false, false},
		{RoleAnonymous, false, false, false, false},
	}

	for _, tc := range cases {
		t.Run(string(tc.role), func(t *testing.T) {
			if got := tc.role.CanManageCatalog(); got != tc.manageCatalog {
				t.Errorf("CanManageCatalog() = %v, want %v", got, tc.manageCatalog)
			}
			if got := tc.role.CanAuthorReviews(); got != tc.authorReviews {
				t.Errorf("CanAuthorReviews() = %v, want %v", got, tc.authorReviews)
			}
			if got := tc.role.CanListReviews(); got != tc.listReviews {
				t.Errorf("CanListReviews() = %v, want %v", got, tc.listReviews)
			}
			if got := tc.role.SeesAllReviews(); got != tc.seesAll {
				t.Errorf("SeesAllReviews() = %v, want %v", got, tc.seesAll)
			}
		})
	}
}

func TestIdentityAuthenticated(t *testing.T) {
	if (Identity{Role: RoleAnonymous}).Authenticated() {
		t.Fatalf("anonymous identity must not count as authenticated")
	}
	if (Identity{}).Authenticated() {
		t.Fatalf("zero identity must not count as authenticated")
	}
	for _, role := range []Role{RoleAdmin, RoleCritic, RoleRegular} {
		if !(Identity{UserID: 1, Role: role}).Authenticated() {
			t.Fatalf("%s identity should be authenticated", role)
		}
	}
}

func TestValidStars(t *testing.T) {
	for _, stars := range []int{1, 5, 10} {
		if !ValidStars(stars) {
			t.Errorf("ValidStars(%d) = false, want true", stars)
		}
	}
	for _, stars := range []int{0, -1, 11} {
		if ValidStars(stars) {
			t.Errorf("ValidStars(%d) = true, want false", stars)
		}
	}
}
