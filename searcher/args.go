package searcher

// Hyperparameters for MCTS

const C_SQUARED = 2.0 // Exploration constant

// Use rewards to estimate the chance of winning
const WIN = 1.0
const LOSS = 1 - WIN

// MAX_CUTOFF is the default playout length in plies before the evaluator scores the board.
const MAX_CUTOFF = 60

// EVAL_SCALE is the evaluator score at which the jaguar's estimated winning chance is about 73%.
const EVAL_SCALE = 2.5e6
