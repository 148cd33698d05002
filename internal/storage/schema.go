package storage

// Schema contains SQL statements to create database tables.
const Schema = `
-- SEO analyses: one row per pipeline run, append-only
CREATE TABLE IF NOT EXISTS seo_analysis (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    project_id TEXT,
    url TEXT NOT NULL,
    analysis_type TEXT NOT NULL DEFAULT 'site',
    score INTEGER NOT NULL DEFAULT 0,
    results TEXT NOT NULL,
    analyzed_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_seo_analysis_type ON seo_analysis(analysis_type);
CREATE INDEX IF NOT EXISTS idx_seo_analysis_project ON seo_analysis(project_id);
CREATE INDEX IF NOT EXISTS idx_seo_analysis_analyzed_at ON seo_analysis(analyzed_at);

-- URL redirections
CREATE TABLE IF NOT EXISTS redirections (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    project_id TEXT,
    source_url TEXT NOT NULL,
    target_url TEXT NOT NULL,
    redirect_type TEXT NOT NULL DEFAULT '301',
    status TEXT NOT NULL DEFAULT 'active',
    hits INTEGER NOT NULL DEFAULT 0,
    last_accessed DATETIME,
    created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

CREATE UNIQUE INDEX IF NOT EXISTS idx_redirections_source ON redirections(source_url);
CREATE INDEX IF NOT EXISTS idx_redirections_status ON redirections(status);

-- 404 monitor log, deduplicated by (uri, project_id)
CREATE TABLE IF NOT EXISTS monitor_404 (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    project_id TEXT,
    uri TEXT NOT NULL,
    referer TEXT,
    user_agent TEXT,
    ip_address TEXT,
    hits INTEGER NOT NULL DEFAULT 1,
    last_accessed DATETIME DEFAULT CURRENT_TIMESTAMP,
    created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_monitor_404_uri ON monitor_404(uri);
CREATE INDEX IF NOT EXISTS idx_monitor_404_last_accessed ON monitor_404(last_accessed);

-- Sitemap entries
CREATE TABLE IF NOT EXISTS sitemaps (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    project_id TEXT,
    type TEXT NOT NULL DEFAULT 'general',
    url TEXT NOT NULL,
    priority REAL NOT NULL DEFAULT 0.5,
    changefreq TEXT NOT NULL DEFAULT 'weekly',
    last_modified DATETIME,
    created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_sitemaps_type ON sitemaps(type);
CREATE INDEX IF NOT EXISTS idx_sitemaps_url ON sitemaps(url);

-- Local business locations
CREATE TABLE IF NOT EXISTS local_locations (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    project_id TEXT,
    name TEXT NOT NULL,
    address TEXT,
    city TEXT,
    state TEXT,
    country TEXT,
    postal_code TEXT,
    phone TEXT,
    email TEXT,
    website TEXT,
    latitude REAL,
    longitude REAL,
    business_hours TEXT,
    created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_local_locations_project ON local_locations(project_id);

-- Image SEO inventory
CREATE TABLE IF NOT EXISTS image_seo (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    project_id TEXT,
    image_url TEXT NOT NULL,
    alt_text TEXT,
    title TEXT,
    caption TEXT,
    description TEXT,
    file_size INTEGER,
    dimensions TEXT,
    optimized INTEGER NOT NULL DEFAULT 0,
    created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_image_seo_project ON image_seo(project_id);
CREATE INDEX IF NOT EXISTS idx_image_seo_optimized ON image_seo(optimized);

-- Generated content history
CREATE TABLE IF NOT EXISTS content_ai (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    project_id TEXT,
    keyword TEXT NOT NULL,
    content_type TEXT NOT NULL,
    prompt TEXT,
    generated_content TEXT NOT NULL,
    credits_used INTEGER NOT NULL DEFAULT 0,
    created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_content_ai_keyword ON content_ai(keyword);
`
