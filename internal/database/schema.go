package database

// Embedded schemas, keyed by database name. All monetary columns are TEXT
// holding exact decimal strings; calendar dates are TEXT in ISO form
// (YYYY-MM-DD); created/updated timestamps are Unix seconds.
var schemas = map[string]string{
	"core":   coreSchema,
	"ledger": ledgerSchema,
	"cache":  cacheSchema,
}

// coreSchema holds the user's declared financial profile and goals.
const coreSchema = `
CREATE TABLE IF NOT EXISTS users (
	id TEXT PRIMARY KEY,
	full_name TEXT NOT NULL,
	email TEXT NOT NULL UNIQUE,
	monthly_salary TEXT NOT NULL,
	preferred_currency TEXT NOT NULL DEFAULT 'BHD',
	created_at INTEGER NOT NULL,
	updated_at INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS monthly_expenses (
	id TEXT PRIMARY KEY,
	user_id TEXT NOT NULL REFERENCES users(id),
	category TEXT NOT NULL,
	amount TEXT NOT NULL,
	label TEXT,
	created_at INTEGER NOT NULL,
	updated_at INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_monthly_expenses_user ON monthly_expenses(user_id);

CREATE TABLE IF NOT EXISTS goals (
	id TEXT PRIMARY KEY,
	user_id TEXT NOT NULL REFERENCES users(id),
	name TEXT NOT NULL,
	category TEXT NOT NULL,
	target_amount TEXT NOT NULL,
	saved_amount TEXT NOT NULL DEFAULT '0',
	monthly_savings_target TEXT,
	currency TEXT NOT NULL DEFAULT 'BHD',
	deadline TEXT NOT NULL,
	priority TEXT NOT NULL,
	status TEXT NOT NULL,
	created_at INTEGER NOT NULL,
	updated_at INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_goals_user ON goals(user_id);
`

// ledgerSchema holds append-heavy financial history: imported transactions,
// simulation runs, detected anomalies, generated reports and coach advice.
const ledgerSchema = `
CREATE TABLE IF NOT EXISTS transactions (
	id TEXT PRIMARY KEY,
	user_id TEXT NOT NULL,
	merchant_name TEXT,
	amount TEXT NOT NULL,
	type TEXT NOT NULL,
	currency TEXT NOT NULL DEFAULT 'BHD',
	category TEXT NOT NULL DEFAULT 'OTHER',
	transaction_date TEXT NOT NULL,
	created_at INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_transactions_user_date ON transactions(user_id, transaction_date);

CREATE TABLE IF NOT EXISTS simulations (
	id TEXT PRIMARY KEY,
	user_id TEXT NOT NULL,
	goal_id TEXT NOT NULL,
	name TEXT NOT NULL,
	adjustments TEXT NOT NULL,
	simulated_rate TEXT NOT NULL,
	baseline_date TEXT NOT NULL,
	simulated_date TEXT NOT NULL,
	months_saved INTEGER NOT NULL,
	created_at INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_simulations_user_goal ON simulations(user_id, goal_id);

CREATE TABLE IF NOT EXISTS anomalies (
	id TEXT PRIMARY KEY,
	user_id TEXT NOT NULL,
	category TEXT NOT NULL,
	severity TEXT NOT NULL,
	actual_amount TEXT NOT NULL,
	baseline_amount TEXT NOT NULL,
	message TEXT NOT NULL,
	is_dismissed INTEGER NOT NULL DEFAULT 0,
	created_at INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_anomalies_user ON anomalies(user_id, is_dismissed);

CREATE TABLE IF NOT EXISTS reports (
	id TEXT PRIMARY KEY,
	user_id TEXT NOT NULL,
	title TEXT NOT NULL,
	period_start TEXT NOT NULL,
	period_end TEXT NOT NULL,
	content TEXT NOT NULL,
	created_at INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_reports_user ON reports(user_id);

CREATE TABLE IF NOT EXISTS advice_history (
	id TEXT PRIMARY KEY,
	user_id TEXT NOT NULL,
	role TEXT NOT NULL,
	message TEXT NOT NULL,
	created_at INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_advice_history_user ON advice_history(user_id, created_at);
`

// cacheSchema holds ephemeral operational data.
const cacheSchema = `
CREATE TABLE IF NOT EXISTS coach_sessions (
	user_id TEXT PRIMARY KEY,
	state TEXT NOT NULL,
	updated_at INTEGER NOT NULL
);
`
