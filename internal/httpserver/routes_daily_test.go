package httpserver

import (
	"sync"
	"testing"
)

// TestDailySessionRecordsOneSolve hammers one session with concurrent valid
// attempts and checks exactly one caller wins the finishing transition, so a
// solve can never be counted or persisted twice.
func TestDailySessionRecordsOneSolve(t *testing.T) {
	d := &dailyServer{}
	sess := &dailySession{RecordID: "rec"}

	const callers = 16
	var wg sync.WaitGroup
	wins := make(chan bool, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, live := d.recordSessionAttempt(sess, true)
			wins <- live
		}()
	}
	wg.Wait()
	close(wins)

	won := 0
	for live := range wins {
		if live {
			won++
		}
	}
	if won != 1 {
		t.Fatalf("winning attempts = %d, want exactly 1", won)
	}
	if !sess.Finished {
		t.Fatal("session not finished after a valid attempt")
	}
	if sess.Attempts != 1 {
		t.Fatalf("attempts = %d, want 1", sess.Attempts)
	}
}

// TestDailySessionCountsAttemptsUntilSolved walks a session through failed
// attempts, a solve, and a post-solve attempt that must come back locked.
func TestDailySessionCountsAttemptsUntilSolved(t *testing.T) {
	d := &dailyServer{}
	sess := &dailySession{RecordID: "rec"}

	for i := 1; i <= 3; i++ {
		attempts, live := d.recordSessionAttempt(sess, false)
		if !live || attempts != i {
			t.Fatalf("attempt %d: (attempts, live) = (%d, %v), want (%d, true)", i, attempts, live, i)
		}
	}
	if sess.Finished {
		t.Fatal("session finished without a valid attempt")
	}

	attempts, live := d.recordSessionAttempt(sess, true)
	if !live || attempts != 4 || !sess.Finished {
		t.Fatalf("solve: (attempts, live, finished) = (%d, %v, %v), want (4, true, true)",
			attempts, live, sess.Finished)
	}

	attempts, live = d.recordSessionAttempt(sess, true)
	if live || attempts != 4 {
		t.Fatalf("post-solve: (attempts, live) = (%d, %v), want (4, false)", attempts, live)
	}
}
