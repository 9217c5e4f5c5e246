package integration

import (
	"fmt"
	"net/http"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestConcurrentTransfers fires opposing transfer streams between two
// accounts through the HTTP stack and verifies the combined balance is
// conserved and no deadlock occurs.
func TestConcurrentTransfers(t *testing.T) {
	app := newTestApp(t)
	defer app.close()

	app.createAccount(t, "alice", "1000")
	app.createAccount(t, "bob", "1000")

	const rounds = 50

	var wg sync.WaitGroup
	var failures atomic.Int64
	transferFn := func(from, to string) {
		defer wg.Done()
		resp := app.post(t, "/api/v1/transfers", map[string]string{
			"from_account_id": from,
			"to_account_id":   to,
			"amount":          "1",
		})
		resp.Body.Close()
		// Insufficient funds is a legitimate outcome under contention
		if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusBadRequest {
			failures.Add(1)
		}
	}

	wg.Add(2 * rounds)
	for i := 0; i < rounds; i++ {
		go transferFn("alice", "bob")
		go transferFn("bob", "alice")
	}
	wg.Wait()

	assert.Equal(t, int64(0), failures.Load(), "unexpected non-2xx/400 responses")

	aliceBal := decimal.RequireFromString(app.balance(t, "alice"))
	bobBal := decimal.RequireFromString(app.balance(t, "bob"))
	total := aliceBal.Add(bobBal)
	assert.True(t, total.Equal(decimal.RequireFromString("2000")),
		"combined balance changed: alice=%s bob=%s", aliceBal, bobBal)
}

// TestConcurrentOverdraftAttempts sends more withdrawals than the source can
// cover; the balance must land on exactly zero with the excess rejected.
func TestConcurrentOverdraftAttempts(t *testing.T) {
	app := newTestApp(t)
	defer app.close()

	app.createAccount(t, "source", "100")
	for i := 0; i < 15; i++ {
		app.createAccount(t, fmt.Sprintf("sink-%d", i), "0")
	}

	var wg sync.WaitGroup
	var committed atomic.Int64

	wg.Add(15)
	for i := 0; i < 15; i++ {
		go func(i int) {
			defer wg.Done()
			resp := app.post(t, "/api/v1/transfers", map[string]string{
				"from_account_id": "source",
				"to_account_id":   fmt.Sprintf("sink-%d", i),
				"amount":          "10",
			})
			resp.Body.Close()
			if resp.StatusCode == http.StatusCreated {
				committed.Add(1)
			}
		}(i)
	}
	wg.Wait()

	// 100 / 10 = exactly 10 transfers fit
	assert.Equal(t, int64(10), committed.Load())
	assert.Equal(t, "0", app.balance(t, "source"))

	sum := decimal.Zero
	for i := 0; i < 15; i++ {
		sum = sum.Add(decimal.RequireFromString(app.balance(t, fmt.Sprintf("sink-%d", i))))
	}
	assert.True(t, sum.Equal(decimal.RequireFromString("100")))
}

// TestConcurrentCreateSameID hammers account creation for one id; exactly
// one request may win.
func TestConcurrentCreateSameID(t *testing.T) {
	app := newTestApp(t)
	defer app.close()

	const attempts = 20

	var wg sync.WaitGroup
	var created, conflicted atomic.Int64

	wg.Add(attempts)
	for i := 0; i < attempts; i++ {
		go func() {
			defer wg.Done()
			resp := app.post(t, "/api/v1/accounts", map[string]string{"id": "contested", "balance": "5"})
			resp.Body.Close()
			switch resp.StatusCode {
			case http.StatusCreated:
				created.Add(1)
			case http.StatusConflict:
				conflicted.Add(1)
			}
		}()
	}
	wg.Wait()

	require.Equal(t, int64(1), created.Load())
	assert.Equal(t, int64(attempts-1), conflicted.Load())
	assert.Equal(t, "5", app.balance(t, "contested"))
}

// TestConcurrentAdjustments applies many concurrent relative adjustments and
// expects no lost updates.
func TestConcurrentAdjustments(t *testing.T) {
	app := newTestApp(t)
	defer app.close()

	app.createAccount(t, "counter", "0")

	const workers = 40

	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			resp := app.post(t, "/api/v1/accounts/counter/adjust", map[string]string{"delta": "2.5"})
			resp.Body.Close()
		}()
	}
	wg.Wait()

	assert.Equal(t, "100", app.balance(t, "counter"))
}
