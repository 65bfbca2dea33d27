// Package gmail provides thin helpers over the Gmail v1 API.
//
// A Client wraps an injected *gmail.Service and exposes one method per API
// operation for drafts, messages, attachments and labels. Every method takes
// a user ID; an empty ID addresses the client's default mailbox, "me" unless
// configured otherwise.
//
// Outgoing mail is described by a Message, which renders RFC 2822 text
// (multipart/mixed when attachments are present) and encodes it as base64url
// for the API's raw field. Pre-built messages can be passed as RawMessage.
//
// Example usage:
//
//	svc, err := gmail.NewService(ctx, option.WithHTTPClient(httpClient))
//	if err != nil {
//	    return err
//	}
//	client, err := gm.NewClient(svc)
//	if err != nil {
//	    return err
//	}
//
//	sent, err := client.SendMessage(ctx, "", &gm.Message{
//	    To:      []string{"recipient@example.com"},
//	    Subject: "Hello",
//	    Body:    "This is a test email",
//	})
package gmail
