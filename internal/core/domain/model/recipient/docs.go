// Package recipient models alternate recipients: people a customer authorizes,
// through an unguessable share link, to receive a shipment on their behalf.
package recipient
