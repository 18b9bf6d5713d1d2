package searcher

// Hyperparameters for MCTS

const Exploration = 1.4 // c in c*sqrt(2*ln(N)/n)

const MaxCutoff = 100 // Rollout moves before a playout is scored as a draw

// Alpha-beta scores for decided games, beyond any heuristic value
const WinScore = 1e6
const LossScore = -WinScore
