package shell

// ActivationMarker appears in every activation command users add to their
// shell config.
const ActivationMarker = "bvm activate"
