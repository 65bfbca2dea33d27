// Package gmail_tools provides MCP (Model Context Protocol) tools for interacting with Gmail.
//
// Drafts:
//   - gmail_list_drafts, gmail_get_draft
//   - gmail_create_draft, gmail_update_draft, gmail_send_draft, gmail_delete_draft
//
// Messages:
//   - gmail_list_messages: List messages matching a search query (all pages)
//   - gmail_get_message: Get a message in full, metadata or minimal format
//   - gmail_send_message, gmail_insert_message
//   - gmail_modify_messages, gmail_delete_messages: batch operations over message IDs
//
// Attachments:
//   - gmail_list_attachments: List all attachments in a message
//   - gmail_get_attachment: Retrieve attachment content (base64 or text)
//   - gmail_get_message_body: Extract text or HTML body from a message
//
// Labels:
//   - gmail_list_labels
//   - gmail_create_label, gmail_update_label, gmail_delete_label
//
// Example usage:
//
//	// Find unread invoices
//	gmail_list_messages(query: "is:unread subject:invoice")
//
//	// Get attachment content as text (for .ics, .txt, etc.)
//	gmail_get_attachment(messageId: "msg123", attachmentId: "att456", encoding: "text")
//
// Attachment size is limited to 25MB (gmail.MaxAttachmentSize). Tools that
// send, change or delete mail are not registered in read-only mode.
package gmail_tools
