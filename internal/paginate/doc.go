// Package paginate retrieves complete collections from cursor-paged list
// endpoints.
//
// A list endpoint returns a page of items plus an optional continuation token.
// The helpers in this package hide that protocol: they start without a token,
// request one page at a time, and keep following the returned token until the
// remote service stops returning one.
//
// Example usage:
//
//	rules, err := paginate.All(ctx, func(ctx context.Context, token string) (paginate.Page[*calendar.AclRule], error) {
//	    call := svc.Acl.List("primary").Context(ctx)
//	    if token != "" {
//	        call = call.PageToken(token)
//	    }
//	    resp, err := call.Do()
//	    if err != nil {
//	        return paginate.Page[*calendar.AclRule]{}, err
//	    }
//	    return paginate.Page[*calendar.AclRule]{Items: resp.Items, NextPageToken: resp.NextPageToken}, nil
//	})
//
// Failures are never retried. When a page request fails, the error is returned
// wrapped with the page number and any items collected so far are dropped.
package paginate
