package channels_test

import (
	"testing"
	"time"

	"github.com/AbdulWasayUl/graphql-countries/internal/channels"
	"github.com/AbdulWasayUl/graphql-countries/models"
)

func TestChannels_Table(t *testing.T) {
	tests := []struct {
		name     string
		inputID  string
		expected string
	}{
		{"SingleMessage", "France", "France"},
		{"AnotherMessage", "Côte d'Ivoire", "Côte d'Ivoire"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ch := channels.New()

			ch.DataRequest <- models.DataRequest{ID: tt.inputID}

			got := (<-ch.DataRequest).ID

			if got != tt.expected {
				t.Fatalf("expected %s, got %s", tt.expected, got)
			}
		})
	}
}

func TestChannels_SubmitTracksWork(t *testing.T) {
	ch := channels.New()
	ch.Submit(models.DataRequest{ID: "Peru"})

	done := make(chan struct{})
	go func() {
		ch.WG.Wait()
		close(done)
	}()

	select {
	case <-done:
		t.Fatal("Wait returned before the submitted request was marked done")
	case <-time.After(50 * time.Millisecond):
	}

	req := <-ch.DataRequest
	if req.ID != "Peru" {
		t.Fatalf("expected Peru, got %s", req.ID)
	}
	ch.WG.Done()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Wait did not return after Done")
	}
}
