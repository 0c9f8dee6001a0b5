// Package mocks provides shared function-field mocks for the service and store
// interfaces. Each mock calls its ...Fn field when set and otherwise returns its
// default fields, so a zero value is a usable happy-path stub.
//
//	jwt := &mocks.MockJWTService{
//	    ValidateTokenFn: func(ctx context.Context, token string) (*auth.Claims, error) {
//	        return nil, auth.ErrExpiredToken
//	    },
//	}
package mocks
