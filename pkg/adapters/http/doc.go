/*
Package http drives a browser kiosk as a carousel surface.

Surface turns rect operations into commands; Hub keeps the settled page
state and fans commands out; NewHandler serves the kiosk page, which holds
one iframe per slot and applies the commands it receives over Server-Sent
Events on /events.
*/
package http
