package sessioncase

const SweepFailureLimit = sweepFailureLimit
