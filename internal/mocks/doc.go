// Package mocks provides centralized test doubles for the store and auth
// interfaces.
//
// Each mock keeps a small in-memory default behavior that can be overridden
// per method through its Fn fields:
//
//	accounts := mocks.NewMockAccountStore()
//	accounts.ExistsByEmailFn = func(ctx context.Context, email string) (bool, error) {
//	    return false, errors.New("db down")
//	}
package mocks
