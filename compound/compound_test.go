package compound

import (
	"context"
	"math/rand"
	"testing"

	"github.com/MyVueCodeHub/bayesfit/config"
	"github.com/MyVueCodeHub/bayesfit/data"
)

func sampleUsers() []data.User {
	users := make([]data.User, 0, 100)
	for i := 0; i < 100; i++ {
		if i < 30 {
			users = append(users, data.User{Converted: true, Value: 10 + float64(i%5)})
		} else {
			users = append(users, data.User{Converted: false, Value: 0})
		}
	}
	return users
}

func TestFitGammaSeverity(t *testing.T) {
	users, err := data.UserLevel(sampleUsers())
	if err != nil {
		t.Fatalf("UserLevel() error = %v", err)
	}
	post, diag, err := Fit(context.Background(), users, config.Simple(config.FamilyGamma), Priors{}, rand.New(rand.NewSource(1)))
	if err != nil {
		t.Fatalf("Fit() error = %v", err)
	}
	if !diag.Converged {
		t.Error("Diagnostics.Converged = false, want true for a conjugate severity fit")
	}
	if post.Family() != "compound-beta-gamma" {
		t.Errorf("Family() = %q, want compound-beta-gamma", post.Family())
	}
	mean := post.Mean()
	if mean[0] <= 0 || mean[0] >= 1 {
		t.Errorf("Mean()[0] (conversion rate) = %v, want in (0,1)", mean[0])
	}
}

func TestFitLogNormalMixtureSeverity(t *testing.T) {
	users, err := data.UserLevel(sampleUsers())
	if err != nil {
		t.Fatalf("UserLevel() error = %v", err)
	}
	severity := config.Mixture(config.FamilyLogNormalMixture, 2)
	post, _, err := Fit(context.Background(), users, severity, Priors{}, rand.New(rand.NewSource(1)))
	if err != nil {
		t.Fatalf("Fit() error = %v", err)
	}
	if post.Family() != "compound-beta-lognormalmixture" {
		t.Errorf("Family() = %q, want compound-beta-lognormalmixture", post.Family())
	}
}

func TestFitRejectsNonUserLevelData(t *testing.T) {
	d, _ := data.Binomial(5, 10)
	if _, _, err := Fit(context.Background(), d, config.Simple(config.FamilyGamma), Priors{}, rand.New(rand.NewSource(1))); err == nil {
		t.Fatal("expected an error for non-UserLevel data")
	}
}

func TestFitRejectsNoConvertedUsers(t *testing.T) {
	users, err := data.UserLevel([]data.User{{Converted: false, Value: 0}, {Converted: false, Value: 0}})
	if err != nil {
		t.Fatalf("UserLevel() error = %v", err)
	}
	if _, _, err := Fit(context.Background(), users, config.Simple(config.FamilyGamma), Priors{}, rand.New(rand.NewSource(1))); err == nil {
		t.Fatal("expected an error when no users converted")
	}
}
