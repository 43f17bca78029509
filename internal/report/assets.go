package report

// reportCSS is the report's embedded stylesheet, adapted from the teacher's
// single-file HTML report: same layout primitives (badges, sortable table,
// search/filter controls), re-themed for the run statuses this package
// reports on instead of backup-specific ones.
const reportCSS = `    <style>
        :root {
            --background: 0 0% 100%;
            --foreground: 222.2 84% 4.9%;
            --card: 0 0% 100%;
            --muted: 210 40% 96%;
            --muted-foreground: 215.4 16.3% 46.9%;
            --accent: 210 40% 96%;
            --primary: 222.2 47.4% 11.2%;
            --primary-foreground: 210 40% 98%;
            --destructive: 0 84.2% 60.2%;
            --border: 214.3 31.8% 91.4%;
            --radius: 0.5rem;
        }

        * { box-sizing: border-box; }

        body {
            font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, "Helvetica Neue", Arial, sans-serif;
            line-height: 1.5;
            color: hsl(var(--foreground));
            background-color: hsl(var(--background));
            margin: 0;
            padding: 20px;
        }

        .container { max-width: 1200px; margin: 0 auto; }

        h1 {
            font-size: 2rem;
            font-weight: 700;
            margin-bottom: 1rem;
            text-align: center;
        }

        .mascot-header { text-align: center; margin-bottom: 2rem; padding: 1rem; }

        .controls {
            display: flex;
            gap: 1rem;
            margin-bottom: 1rem;
            flex-wrap: wrap;
            align-items: center;
        }

        .search-input {
            flex: 1;
            min-width: 200px;
            padding: 0.5rem 0.75rem;
            border: 1px solid hsl(var(--border));
            border-radius: var(--radius);
            background: hsl(var(--background));
            color: hsl(var(--foreground));
            font-size: 0.875rem;
        }

        .filter-buttons { display: flex; gap: 0.5rem; flex-wrap: wrap; }

        .filter-btn {
            padding: 0.375rem 0.75rem;
            border: 1px solid hsl(var(--border));
            border-radius: var(--radius);
            background: hsl(var(--muted));
            color: hsl(var(--foreground));
            font-size: 0.8rem;
            cursor: pointer;
        }

        .filter-btn.active {
            background: hsl(var(--primary));
            color: hsl(var(--primary-foreground));
        }

        .table-container {
            border: 1px solid hsl(var(--border));
            border-radius: var(--radius);
            overflow: hidden;
            background: hsl(var(--card));
        }

        table { width: 100%; border-collapse: collapse; }

        .table-header { background: hsl(var(--muted)); position: sticky; top: 0; }

        .table-body { max-height: 600px; overflow-y: auto; }

        th, td {
            text-align: left;
            padding: 0.75rem;
            border-bottom: 1px solid hsl(var(--border));
        }

        th { font-weight: 600; cursor: pointer; user-select: none; white-space: nowrap; }

        .sort-indicator { margin-left: 0.5rem; opacity: 0.5; }
        .sort-indicator.active { opacity: 1; }

        .file-path {
            max-width: 280px;
            overflow: hidden;
            text-overflow: ellipsis;
            white-space: nowrap;
        }

        .file-path a { color: hsl(var(--primary)); text-decoration: none; }
        .file-path a:hover { text-decoration: underline; }

        .status-badge {
            display: inline-flex;
            padding: 0.25rem 0.5rem;
            border-radius: calc(var(--radius) - 2px);
            font-size: 0.75rem;
            font-weight: 500;
            white-space: nowrap;
        }

        .status-indexed, .status-copied, .status-correct {
            background: hsl(142 76% 36% / 0.1);
            color: hsl(142 76% 36%);
        }

        .status-already_stored, .status-delisted {
            background: hsl(221 83% 53% / 0.1);
            color: hsl(221 83% 53%);
        }

        .status-missed, .status-incorrect, .status-deleted {
            background: hsl(45 93% 47% / 0.1);
            color: hsl(45 93% 47%);
        }

        .status-missing, .status-error {
            background: hsl(var(--destructive) / 0.1);
            color: hsl(var(--destructive));
        }

        .file-size { font-variant-numeric: tabular-nums; text-align: right; }

        tr:hover { background: hsl(var(--muted) / 0.5); }

        .summary-badges { display: flex; justify-content: center; margin: 1.5rem 0; }

        .badge-row { display: flex; justify-content: center; gap: 0.75rem; flex-wrap: wrap; }

        .summary-badge {
            display: inline-flex;
            flex-direction: column;
            align-items: center;
            padding: 0.75rem;
            border-radius: var(--radius);
            min-width: 90px;
            text-align: center;
            border: 1px solid hsl(var(--border));
            background: hsl(var(--muted));
        }

        .badge-label { font-size: 0.7rem; opacity: 0.8; margin-bottom: 0.25rem; }
        .badge-value { font-size: 1.1rem; font-weight: 700; }
    </style>`

// reportJavaScript provides the search/filter/sort interactivity, lifted
// near-verbatim from the teacher's report since the table shape (path,
// status, destination, size, details) is unchanged.
const reportJavaScript = `        <script>
            document.addEventListener('DOMContentLoaded', function() {
                const searchInput = document.getElementById('searchInput');
                const filterButtons = document.querySelectorAll('.filter-btn');
                const tableBody = document.getElementById('fileTableBody');
                const sortHeaders = document.querySelectorAll('th[data-sort]');

                let currentFilter = 'all';
                let currentSort = { column: null, direction: 'asc' };

                searchInput.addEventListener('input', filterAndSearch);

                filterButtons.forEach(btn => {
                    btn.addEventListener('click', function() {
                        filterButtons.forEach(b => b.classList.remove('active'));
                        this.classList.add('active');
                        currentFilter = this.dataset.filter;
                        filterAndSearch();
                    });
                });

                sortHeaders.forEach(header => {
                    header.addEventListener('click', function() {
                        const column = this.dataset.sort;
                        if (currentSort.column === column) {
                            currentSort.direction = currentSort.direction === 'asc' ? 'desc' : 'asc';
                        } else {
                            currentSort.column = column;
                            currentSort.direction = 'asc';
                        }
                        updateSortIndicators();
                        sortTable();
                    });
                });

                function filterAndSearch() {
                    const searchTerm = searchInput.value.toLowerCase();
                    tableBody.querySelectorAll('tr').forEach(row => {
                        const status = row.dataset.status;
                        const path = row.dataset.path.toLowerCase();
                        const matchesFilter = currentFilter === 'all' || status === currentFilter;
                        const matchesSearch = searchTerm === '' || path.includes(searchTerm);
                        row.style.display = matchesFilter && matchesSearch ? '' : 'none';
                    });
                }

                function updateSortIndicators() {
                    sortHeaders.forEach(header => {
                        const indicator = header.querySelector('.sort-indicator');
                        if (header.dataset.sort === currentSort.column) {
                            indicator.textContent = currentSort.direction === 'asc' ? '↑' : '↓';
                            indicator.classList.add('active');
                        } else {
                            indicator.textContent = '↕';
                            indicator.classList.remove('active');
                        }
                    });
                }

                function sortTable() {
                    const rows = Array.from(tableBody.querySelectorAll('tr'));
                    rows.sort((a, b) => {
                        let aVal, bVal;
                        switch (currentSort.column) {
                            case 'path':
                                aVal = a.dataset.path; bVal = b.dataset.path; break;
                            case 'status':
                                aVal = a.dataset.status; bVal = b.dataset.status; break;
                            case 'destination':
                                aVal = a.cells[2].textContent; bVal = b.cells[2].textContent; break;
                            case 'size':
                                aVal = parseSizeForSort(a.cells[3].textContent);
                                bVal = parseSizeForSort(b.cells[3].textContent);
                                break;
                            case 'details':
                                aVal = a.cells[4].textContent; bVal = b.cells[4].textContent; break;
                            default:
                                return 0;
                        }
                        if (currentSort.column === 'size') {
                            return currentSort.direction === 'asc' ? aVal - bVal : bVal - aVal;
                        }
                        const comparison = ('' + aVal).localeCompare(bVal);
                        return currentSort.direction === 'asc' ? comparison : -comparison;
                    });
                    rows.forEach(row => tableBody.appendChild(row));
                }

                function parseSizeForSort(sizeText) {
                    if (sizeText === '-') return 0;
                    const matches = sizeText.match(/^([\d.]+)\s*([kKMGTP]?B|bytes?)$/);
                    if (!matches) return 0;
                    const value = parseFloat(matches[1]);
                    const unit = matches[2].toUpperCase();
                    const multipliers = { 'BYTES': 1, 'BYTE': 1, 'KB': 1024, 'MB': 1024*1024, 'GB': 1024*1024*1024, 'TB': 1024*1024*1024*1024, 'PB': 1024*1024*1024*1024*1024 };
                    return value * (multipliers[unit] || 1);
                }
            });
        </script>`
