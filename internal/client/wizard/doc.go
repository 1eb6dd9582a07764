// Package wizard drives the registration steps.
//
// Each step is a Form: on Mount it loads its draft (Idle -> Editing); on
// Submit it validates, and on success persists the draft (Committing)
// before reporting that the wizard may move on (Advancing). A failed
// validation leaves the form in Editing with field errors. The draft is
// always written before the wizard changes step.
//
// The attachments step differs: a successful commit uploads pending files,
// builds the payload from every committed draft, and submits it. A Wizard
// sequences the steps and tracks the current one.
package wizard
